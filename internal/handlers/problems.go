package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mathquest/internal/problem"
)

type createProblemRequest struct {
	Difficulty  string `json:"difficulty" binding:"required"`
	ProblemType string `json:"problem_type" binding:"required"`
}

func (h *Handler) createProblem(c *gin.Context) {
	noStore(c)

	var req createProblemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "", "difficulty and problem_type are required")
		return
	}
	d, ok := problem.ParseDifficulty(req.Difficulty)
	if !ok {
		respondBadRequest(c, "difficulty", "must be one of easy, medium, hard")
		return
	}
	t, ok := problem.ParseType(req.ProblemType)
	if !ok {
		respondBadRequest(c, "problem_type", "must be one of addition, subtraction, multiplication, division, mixed")
		return
	}

	res, err := h.svc.GenerateProblem(c.Request.Context(), d, t)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type submitAnswerRequest struct {
	// Pointer so a literal 0 binds as present.
	UserAnswer *float64 `json:"user_answer" binding:"required"`
}

func (h *Handler) submitAnswer(c *gin.Context) {
	noStore(c)

	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "user_answer", "a numeric user_answer is required")
		return
	}

	id := ensureClientID(c)
	res, err := h.svc.SubmitAnswer(c.Request.Context(), id, c.Param("id"), *req.UserAnswer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type requestHintRequest struct {
	UserAnswer string `json:"user_answer"`
}

func (h *Handler) requestHint(c *gin.Context) {
	noStore(c)

	var req requestHintRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, "user_answer", "user_answer must be a string")
			return
		}
	}

	id := ensureClientID(c)
	res, err := h.svc.RequestHint(c.Request.Context(), id, c.Param("id"), req.UserAnswer)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) revealSolution(c *gin.Context) {
	noStore(c)

	res, err := h.svc.RevealSolution(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
