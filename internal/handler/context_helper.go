package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/pawcare-grooming-api/internal/service"
	appErrors "github.com/noah-isme/pawcare-grooming-api/pkg/errors"
	"github.com/noah-isme/pawcare-grooming-api/pkg/response"
)

// bindJSON decodes the body into dest and renders a 400 on failure.
func bindJSON(c *gin.Context, dest interface{}, payload string) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+payload+" payload"))
		return false
	}
	return true
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if value, err := strconv.Atoi(c.Query(key)); err == nil {
		return value
	}
	return fallback
}

// queryBool reads an optional boolean query value. An absent value is false.
func queryBool(c *gin.Context, key string) (bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid "+key+" query value")
	}
	return value, nil
}

func petFromQuery(c *gin.Context) (service.PetProfileRequest, error) {
	anxious, err := queryBool(c, "is_anxious")
	if err != nil {
		return service.PetProfileRequest{}, err
	}
	aggressive, err := queryBool(c, "is_aggressive")
	if err != nil {
		return service.PetProfileRequest{}, err
	}
	return service.PetProfileRequest{
		PetSize:       strings.ToLower(strings.TrimSpace(c.Query("pet_size"))),
		CoatCondition: strings.ToLower(strings.TrimSpace(c.Query("coat_condition"))),
		IsAnxious:     anxious,
		IsAggressive:  aggressive,
	}, nil
}
