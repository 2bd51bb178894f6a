package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Dawichi/hexastats/internal/domain/region"
	"github.com/Dawichi/hexastats/internal/usecase"
)

type playerParams struct {
	Server string `validate:"required,platform"`
	Name   string `validate:"required,max=64"`
	Tag    string `validate:"required,max=16"`
}

type summonerParams struct {
	Server string `validate:"required,platform"`
	PUUID  string `validate:"required,max=128"`
}

type historyParams struct {
	Start       int    `validate:"gte=0"`
	Count       int    `validate:"gte=0,lte=100"`
	QueueType   string `validate:"omitempty,oneof=all ranked normal"`
	ChampsLimit int    `validate:"gte=0,lte=200"`
}

type matchParams struct {
	Server  string `validate:"required,platform"`
	MatchID string `validate:"required,max=64"`
	PUUID   string `validate:"omitempty,max=128"`
}

type championSearchParams struct {
	Query string `validate:"max=64"`
	Limit int    `validate:"gte=0,lte=50"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		_, err := region.ParsePlatform(fl.Field().String())
		return err == nil
	})
	return v
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			parts := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				parts = append(parts, fmt.Sprintf("%s failed %s", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, strings.Join(parts, ", "))
		}
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func playerParamsFrom(r *http.Request) playerParams {
	return playerParams{
		Server: strings.TrimSpace(r.PathValue("server")),
		Name:   strings.TrimSpace(r.PathValue("name")),
		Tag:    strings.TrimSpace(r.PathValue("tag")),
	}
}

func summonerParamsFrom(r *http.Request) summonerParams {
	return summonerParams{
		Server: strings.TrimSpace(r.PathValue("server")),
		PUUID:  strings.TrimSpace(r.PathValue("puuid")),
	}
}

func historyParamsFrom(r *http.Request) (historyParams, error) {
	q := r.URL.Query()
	start, err := queryInt(q.Get("start"), "start")
	if err != nil {
		return historyParams{}, err
	}
	count, err := queryInt(q.Get("count"), "count")
	if err != nil {
		return historyParams{}, err
	}
	champsLimit, err := queryInt(q.Get("champsLimit"), "champsLimit")
	if err != nil {
		return historyParams{}, err
	}
	return historyParams{
		Start:       start,
		Count:       count,
		QueueType:   strings.ToLower(strings.TrimSpace(q.Get("queueType"))),
		ChampsLimit: champsLimit,
	}, nil
}

func (p historyParams) query() usecase.MatchIDQuery {
	return usecase.MatchIDQuery{Start: p.Start, Count: p.Count, Type: usecase.QueueType(p.QueueType)}
}

func queryInt(raw, name string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func queryBool(raw, name string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
