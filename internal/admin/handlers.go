package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPriority = 10

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type personRequest struct {
	Name     string `json:"name" binding:"required"`
	Position string `json:"position"`
}

type videoRequest struct {
	URL      string `json:"url" binding:"required"`
	Priority *int   `json:"priority"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := s.auth.Login(req.Username, req.Password)
	switch {
	case errors.Is(err, ErrLoginDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Admin login disabled"})
		return
	case errors.Is(err, ErrInvalidCredentials):
		s.logger.Warn("Failed admin login", zap.String("username", req.Username), zap.String("ip", c.ClientIP()))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	case err != nil:
		s.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "token_type": "bearer"})
}

func (s *Server) state(c *gin.Context) {
	c.JSON(http.StatusOK, s.snaps.Snapshot())
}

func (s *Server) roster(c *gin.Context) {
	people, err := s.store.FetchRoster(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"people": people, "count": len(people)})
}

func (s *Server) addPerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	person, err := s.store.AddPerson(c.Request.Context(), req.Name, req.Position)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (s *Server) updatePerson(c *gin.Context) {
	var req personRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := s.store.UpdatePerson(c.Request.Context(), c.Param("id"), req.Name, req.Position); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

func (s *Server) removePerson(c *gin.Context) {
	if err := s.store.RemovePerson(c.Request.Context(), c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listVideos(c *gin.Context) {
	videos, err := s.store.ListVideos(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos, "count": len(videos)})
}

func (s *Server) addVideo(c *gin.Context) {
	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	priority := defaultPriority
	if req.Priority != nil {
		priority = *req.Priority
	}

	if err := s.store.AddVideoByURL(c.Request.Context(), req.URL, priority); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": req.URL, "priority": priority})
}

func (s *Server) uploadVideo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	priority, err := strconv.Atoi(c.DefaultPostForm("priority", strconv.Itoa(defaultPriority)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be an integer"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open uploaded file"})
		return
	}
	defer f.Close()

	url, err := s.store.UploadVideo(c.Request.Context(), fileHeader.Filename, f, priority)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"url": url, "priority": priority})
}

func (s *Server) deleteVideo(c *gin.Context) {
	url := c.Query("url")
	if url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url query parameter is required"})
		return
	}

	if err := s.store.DeleteVideo(c.Request.Context(), url); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteAllVideos(c *gin.Context) {
	n, err := s.store.DeleteAllVideos(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (s *Server) tomorrow(c *gin.Context) {
	n, err := s.store.TomorrowBirthdays(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

func (s *Server) week(c *gin.Context) {
	days, err := s.store.WeekBirthdays(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
