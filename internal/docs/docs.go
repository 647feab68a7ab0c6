// Package docs 注册 swagger 文档，/api-docs 下的 UI 从这里取 doc.json
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "ClientKey": {"type": "apiKey", "name": "x-client-key", "in": "header"}
    },
    "security": [{"ClientKey": []}],
    "paths": {
        "/api/auth/signup": {
            "post": {
                "tags": ["auth"],
                "summary": "注册",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "登录",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/check-username": {
            "post": {
                "tags": ["auth"],
                "summary": "检查用户名是否可用",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/check-nickname": {
            "post": {
                "tags": ["auth"],
                "summary": "检查昵称是否可用",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/profile": {
            "patch": {
                "tags": ["auth"],
                "summary": "修改个人资料",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/auth/me": {
            "get": {
                "tags": ["auth"],
                "summary": "当前用户资料",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos": {
            "get": {
                "tags": ["videos"],
                "summary": "视频列表",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["videos"],
                "summary": "上传视频",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/search": {
            "get": {
                "tags": ["videos"],
                "summary": "搜索视频",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/history": {
            "get": {
                "tags": ["videos"],
                "summary": "观看记录",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/liked": {
            "get": {
                "tags": ["videos"],
                "summary": "点赞过的视频",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/subscribed": {
            "get": {
                "tags": ["videos"],
                "summary": "订阅频道的视频",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/{id}": {
            "get": {
                "tags": ["videos"],
                "summary": "视频详情",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/{id}/like": {
            "post": {
                "tags": ["videos"],
                "summary": "点赞/取消点赞",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/videos/{id}/comments": {
            "get": {
                "tags": ["comments"],
                "summary": "评论列表",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["comments"],
                "summary": "发表评论",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/comments/{id}": {
            "delete": {
                "tags": ["comments"],
                "summary": "删除评论",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/subscriptions/{channelId}": {
            "post": {
                "tags": ["subscriptions"],
                "summary": "订阅/取消订阅频道",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/channels/{id}": {
            "get": {
                "tags": ["channels"],
                "summary": "频道页",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/notices": {
            "get": {
                "tags": ["notices"],
                "summary": "公告列表",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["notices"],
                "summary": "发布公告",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/notices/{id}": {
            "get": {
                "tags": ["notices"],
                "summary": "公告详情",
                "responses": {"200": {"description": "OK"}}
            },
            "patch": {
                "tags": ["notices"],
                "summary": "修改公告",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["notices"],
                "summary": "删除公告",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/inquiries": {
            "get": {
                "tags": ["inquiries"],
                "summary": "我的询问",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["inquiries"],
                "summary": "提交询问",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/inquiries/all": {
            "get": {
                "tags": ["inquiries"],
                "summary": "全部询问",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/inquiries/{id}": {
            "get": {
                "tags": ["inquiries"],
                "summary": "询问详情",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/inquiries/{id}/answer": {
            "patch": {
                "tags": ["inquiries"],
                "summary": "答复询问",
                "responses": {"200": {"description": "OK"}}
            },
            "delete": {
                "tags": ["inquiries"],
                "summary": "清除答复",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/stats": {
            "get": {
                "tags": ["admin"],
                "summary": "后台统计",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/users": {
            "get": {
                "tags": ["admin"],
                "summary": "用户管理列表",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/videos": {
            "get": {
                "tags": ["admin"],
                "summary": "视频管理列表",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/admin/videos/{id}": {
            "delete": {
                "tags": ["admin"],
                "summary": "删除视频",
                "responses": {"200": {"description": "OK"}}
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "WeTube API",
	Description:      "WeTube 视频分享后端接口",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
