package handler

import (
	"net/http"

	"Volunteer_Hub/internal/pkg"
	"Volunteer_Hub/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	svc   *service.ReportService
	store *pkg.MediaStore
}

func NewReportHandler(svc *service.ReportService, store *pkg.MediaStore) *ReportHandler {
	return &ReportHandler{svc: svc, store: store}
}

// Submit 提交完成报告，multipart：text 字段 + 可选 media 附件。
// 先落库拿到规范文件名，再写文件；写失败只记日志，报告仍然有效。
func (h *ReportHandler) Submit(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	text := c.PostForm("text")
	originalName := ""
	file, err := c.FormFile("media")
	if err == nil && file != nil {
		originalName = file.Filename
	}

	rep, err := h.svc.Submit(id, principalFrom(c), text, originalName)
	if err != nil {
		fail(c, err)
		return
	}

	if rep.MediaPath != "" && file != nil {
		dst, err := h.store.Path(rep.MediaPath)
		if err == nil {
			err = c.SaveUploadedFile(file, dst)
		}
		if err != nil {
			// 落盘失败就清掉引用，不留指向不存在文件的 media_path
			if derr := h.svc.DiscardMedia(rep.ID, principalFrom(c)); derr == nil {
				rep.MediaPath = ""
			}
			c.JSON(http.StatusOK, gin.H{"msg": "report saved, media upload failed", "report": rep})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok", "report": rep})
}

// Moderation 报告审核列表，?status=pending|accepted|rejected|all
func (h *ReportHandler) Moderation(c *gin.Context) {
	view, err := h.svc.Moderation(principalFrom(c), c.Query("status"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Approve 接受报告；是否真的加了分由返回值决定提示文案
func (h *ReportHandler) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	awarded, err := h.svc.Approve(id, principalFrom(c))
	if err != nil {
		fail(c, err)
		return
	}

	msg := "report accepted, points already awarded earlier"
	if awarded {
		msg = "report accepted, points awarded"
	}
	c.JSON(http.StatusOK, gin.H{"msg": msg, "awarded": awarded})
}

func (h *ReportHandler) Reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reject(id, principalFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "report rejected"})
}

func (h *ReportHandler) DeleteMedia(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteMedia(id, principalFrom(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Download 附件下载，admin / 报告本人 / 活动创建者可见
func (h *ReportHandler) Download(c *gin.Context) {
	name := c.Param("name")
	allowed, err := h.svc.CanDownload(name, principalFrom(c))
	if err != nil {
		fail(c, err)
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"msg": "forbidden"})
		return
	}

	path, err := h.store.Path(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "not found"})
		return
	}
	c.FileAttachment(path, name)
}
