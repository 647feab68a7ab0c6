package handler

import (
	"WeTube/internal/dto"
	"WeTube/internal/service"
	"WeTube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type InquiryHandler interface {
	Create(c *gin.Context)
	ListMine(c *gin.Context)
	ListAll(c *gin.Context)
	Get(c *gin.Context)
	Answer(c *gin.Context)
	ClearAnswer(c *gin.Context)
}

type inquiryHandler struct {
	InquiryService service.InquiryService
}

func NewInquiryHandler(inquiryService service.InquiryService) InquiryHandler {
	return &inquiryHandler{InquiryService: inquiryService}
}

type CreateInquiryRequest struct {
	Title   string `json:"title" binding:"required,notblank"`
	Content string `json:"content" binding:"required,notblank"`
}

type AnswerInquiryRequest struct {
	Answer string `json:"answer" binding:"required,notblank"`
}

// @Summary 提交询问
// @Tags inquiries
// @Router /api/inquiries [post]
func (h *inquiryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "标题和内容不能为空")
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID)
	inquiry, err := h.InquiryService.Create(user.ID, req.Title, req.Content)
	if err != nil {
		respondServiceError(c, logCtx, err, "提交询问失败")
		return
	}
	logCtx.WithField("inquiry_id", inquiry.ID).Info("询问提交成功")
	c.JSON(http.StatusCreated, gin.H{
		"message": "询问提交成功",
		"data":    dto.ToInquiryResponse(inquiry, false),
	})
}

// @Summary 我的询问
// @Tags inquiries
// @Router /api/inquiries [get]
func (h *inquiryHandler) ListMine(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.InquiryService.ListMine(user.ID, inquiryPage(c))
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取询问列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取询问列表成功",
		"data":    inquiryList(list, false),
	})
}

// @Summary 全部询问（管理员）
// @Tags inquiries
// @Router /api/inquiries/all [get]
func (h *inquiryHandler) ListAll(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.InquiryService.ListAll(user, inquiryPage(c))
	if err != nil {
		respondServiceError(c, logger.Log.WithField("user_id", user.ID), err, "获取询问列表失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取询问列表成功",
		"data":    inquiryList(list, true),
	})
}

func inquiryPage(c *gin.Context) service.Page {
	return service.NewPage(queryInt(c, "page", 1), queryInt(c, "limit", service.DefaultPageLimit), service.DefaultPageLimit, service.MaxVideoLimit)
}

func inquiryList(list *service.InquiryList, withAuthor bool) gin.H {
	return gin.H{
		"inquiries":   dto.ToInquiryResponses(list.Inquiries, withAuthor),
		"total":       list.Total,
		"page":        list.Page.Page,
		"total_pages": list.Page.TotalPages(list.Total),
	}
}

// @Summary 询问详情（本人或管理员）
// @Tags inquiries
// @Router /api/inquiries/{id} [get]
func (h *inquiryHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	inquiryID, ok := parseIDParam(c, "id", "无效的询问ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("inquiry_id", inquiryID)
	inquiry, err := h.InquiryService.Get(user, inquiryID)
	if err != nil {
		respondServiceError(c, logCtx, err, "获取询问失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "获取询问成功",
		"data":    dto.ToInquiryResponse(inquiry, inquiry.AuthorID != user.ID),
	})
}

// @Summary 答复询问（管理员）
// @Tags inquiries
// @Router /api/inquiries/{id}/answer [patch]
func (h *inquiryHandler) Answer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	inquiryID, ok := parseIDParam(c, "id", "无效的询问ID")
	if !ok {
		return
	}
	var req AnswerInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "答复内容不能为空")
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("inquiry_id", inquiryID)
	inquiry, err := h.InquiryService.Answer(user, inquiryID, req.Answer)
	if err != nil {
		respondServiceError(c, logCtx, err, "答复失败")
		return
	}
	logCtx.Info("询问已答复")
	c.JSON(http.StatusOK, gin.H{
		"message": "答复成功",
		"data":    dto.ToInquiryResponse(inquiry, true),
	})
}

// @Summary 清除答复（管理员）
// @Tags inquiries
// @Router /api/inquiries/{id}/answer [delete]
func (h *inquiryHandler) ClearAnswer(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	inquiryID, ok := parseIDParam(c, "id", "无效的询问ID")
	if !ok {
		return
	}
	logCtx := logger.Log.WithField("user_id", user.ID).WithField("inquiry_id", inquiryID)
	inquiry, err := h.InquiryService.ClearAnswer(user, inquiryID)
	if err != nil {
		respondServiceError(c, logCtx, err, "清除答复失败")
		return
	}
	logCtx.Info("答复已清除")
	c.JSON(http.StatusOK, gin.H{
		"message": "答复已清除",
		"data":    dto.ToInquiryResponse(inquiry, true),
	})
}
