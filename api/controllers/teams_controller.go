package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"PickEm/api/models"
	"PickEm/api/storage"

	"github.com/gin-gonic/gin"
)

const maxLogoBytes = 2 << 20

// UpdateTeamLogo godoc
// @Summary      Upload team logo
// @Description  Store a logo image for a team. Accepts multipart field "file". Raster images are scaled to fit 256x256 and stored as PNG.
// @Tags         admin
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "Team ID"
// @Param        file  formData  file  true  "Logo image"
// @Success      200   {object}  TeamResponseEnvelope
// @Failure      404   {object}  ErrorResponse
// @Failure      422   {object}  ErrorResponse
// @Failure      503   {object}  ErrorResponse
// @Security     BearerAuth
// @Router       /admin/teams/{id}/logo [put]
func (server *Server) UpdateTeamLogo(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team ID"})
		return
	}
	if server.Logos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": storage.ErrNoBucket.Error()})
		return
	}

	team := models.Team{}
	if _, err := team.FindTeamByID(server.DB, uint(id)); errors.Is(err, models.ErrTeamNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load team"})
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Logo file is required"})
		return
	}
	if header.Size > maxLogoBytes {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Logo must be 2MB or smaller"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unable to read logo"})
		return
	}
	defer f.Close()
	body, err := io.ReadAll(io.LimitReader(f, maxLogoBytes+1))
	if err != nil || len(body) > maxLogoBytes {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unable to read logo"})
		return
	}

	filename := header.Filename
	contentType := http.DetectContentType(body)
	if strings.HasSuffix(strings.ToLower(filename), ".svg") {
		contentType = "image/svg+xml"
	}
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Logo must be an image"})
		return
	}
	if contentType != "image/svg+xml" {
		if body, err = storage.NormalizeLogo(body); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unable to read logo"})
			return
		}
		contentType = "image/png"
		filename = storage.PNGName(filename)
	}

	key := storage.NewLogoKey(filename)
	if err := server.Logos.Put(c.Request.Context(), key, body, contentType); err != nil {
		log.Printf("[admin] upload logo for team %d: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to store logo"})
		return
	}

	updated, err := team.UpdateTeamLogo(server.DB, uint(id), key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to save logo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": server.teamToDTO(updated)})
}

// GetTeams godoc
// @Summary      Teams
// @Description  Every team by region and seed.
// @Tags         teams
// @Produce      json
// @Success      200  {array}  TeamDTO
// @Router       /teams [get]
func (server *Server) GetTeams(c *gin.Context) {
	teams, err := (&models.Team{}).FindAllTeams(server.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to load teams"})
		return
	}
	resp := make([]*TeamDTO, 0, len(*teams))
	for i := range *teams {
		resp = append(resp, server.teamToDTO(&(*teams)[i]))
	}
	c.JSON(http.StatusOK, gin.H{"status": http.StatusOK, "response": resp})
}
