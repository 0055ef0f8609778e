package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/resume"
)

// 分区编辑接口。新增返回 201 与新条目，更新与删除返回最新会话。

type entryResponse[T any] struct {
	Entry   T               `json:"entry"`
	Session sessionResponse `json:"session"`
}

func (h *SessionHandler) UpdatePersonal(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var patch resume.PersonalInfoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess, err := h.editor.UpdatePersonal(c.Request.Context(), id, patch.Apply)
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) AddExperience(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, entry, err := h.editor.AddExperience(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryResponse[resume.ExperienceEntry]{Entry: entry, Session: h.view(c, id, sess)})
}

func (h *SessionHandler) UpdateExperience(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var patch resume.ExperiencePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess, err := h.editor.UpdateExperience(c.Request.Context(), id, c.Param("id"), patch.Apply)
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) RemoveExperience(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.RemoveExperience(c.Request.Context(), id, c.Param("id"))
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) AddEducation(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, entry, err := h.editor.AddEducation(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryResponse[resume.EducationEntry]{Entry: entry, Session: h.view(c, id, sess)})
}

func (h *SessionHandler) UpdateEducation(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var patch resume.EducationPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess, err := h.editor.UpdateEducation(c.Request.Context(), id, c.Param("id"), patch.Apply)
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) RemoveEducation(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.RemoveEducation(c.Request.Context(), id, c.Param("id"))
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) AddSkill(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, entry, err := h.editor.AddSkill(c.Request.Context(), id)
	if err != nil {
		writeEditorError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entryResponse[resume.SkillEntry]{Entry: entry, Session: h.view(c, id, sess)})
}

func (h *SessionHandler) UpdateSkill(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var patch resume.SkillPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		BadRequest(c, err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess, err := h.editor.UpdateSkill(c.Request.Context(), id, c.Param("id"), patch.Apply)
	h.reply(c, id, sess, err)
}

func (h *SessionHandler) RemoveSkill(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	sess, err := h.editor.RemoveSkill(c.Request.Context(), id, c.Param("id"))
	h.reply(c, id, sess, err)
}

type professionRequest struct {
	Profession string `json:"profession"`
}

// SetProfession 保存技能生成所用的职业草稿，不属于简历内容。
func (h *SessionHandler) SetProfession(c *gin.Context) {
	id, ok := middleware.SessionID(c)
	if !ok {
		AbortUnauthorized(c)
		return
	}
	var req professionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err.Error())
		return
	}
	sess, err := h.editor.SetProfession(c.Request.Context(), id, req.Profession)
	h.reply(c, id, sess, err)
}
