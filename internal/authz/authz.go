// Package authz 集中做能力判断，handler和service都不直接比较角色字符串
package authz

import (
	"WeTube/internal/model"
	_ "embed"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

//go:embed model.conf
var modelConf string

//go:embed policy.csv
var policyCSV string

type Capability string

const (
	AdminAccess      Capability = "admin:access"
	NoticeWrite      Capability = "notice:write"
	InquiryReadAny   Capability = "inquiry:read_any"
	InquiryListAll   Capability = "inquiry:list_all"
	InquiryAnswer    Capability = "inquiry:answer"
	CommentDeleteAny Capability = "comment:delete_any"
	VideoDeleteAny   Capability = "video:delete_any"
)

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) Allowed() bool {
	return d == Allow
}

type Authorizer struct {
	enforcer *casbin.SyncedEnforcer
}

// New 用内嵌的模型和策略构建enforcer，策略文件格式和casbin的csv适配器一致
func New() (*Authorizer, error) {
	m, err := casbinmodel.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("加载权限模型失败: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("创建enforcer失败: %w", err)
	}

	records, err := csv.NewReader(strings.NewReader(policyCSV)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析权限策略失败: %w", err)
	}
	for _, rec := range records {
		if len(rec) != 3 || strings.TrimSpace(rec[0]) != "p" {
			continue
		}
		if _, err := enforcer.AddPolicy(strings.TrimSpace(rec[1]), strings.TrimSpace(rec[2])); err != nil {
			return nil, fmt.Errorf("写入权限策略失败: %w", err)
		}
	}
	return &Authorizer{enforcer: enforcer}, nil
}

// MustNew 启动阶段用，策略是内嵌的，出错就是代码问题
func MustNew() *Authorizer {
	a, err := New()
	if err != nil {
		panic(err)
	}
	return a
}

// Authorize 匿名用户（nil）一律拒绝
func (a *Authorizer) Authorize(user *model.User, capability Capability) Decision {
	if user == nil {
		return Deny
	}
	ok, err := a.enforcer.Enforce(string(user.Role), string(capability))
	if err != nil || !ok {
		return Deny
	}
	return Allow
}
