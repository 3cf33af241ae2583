package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/pkg/errors"
	"github.com/place-resolver/internal/pkg/utils"
	"github.com/place-resolver/internal/pkg/validator"
	"github.com/place-resolver/internal/usecase/dto"
)

// PlaceSearcher - use case поиска мест
type PlaceSearcher interface {
	Search(ctx context.Context, req dto.SearchRequest) (*domain.Resolution, error)
	SearchAddress(ctx context.Context, req dto.AddressRequest) (*domain.Resolution, error)
	GetPlace(ctx context.Context, id int64, lang string) (*domain.Result, error)
}

// SearchHandler - обработчик для поисковых запросов
type SearchHandler struct {
	searchUC PlaceSearcher
	logger   *zap.Logger
	timeout  time.Duration
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC PlaceSearcher, logger *zap.Logger, timeout time.Duration) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
		timeout:  timeout,
	}
}

// Search godoc
// @Summary Поиск мест по тексту
// @Description Полнотекстовый поиск и автодополнение (mode=live). Возвращает всех кандидатов с lineage.
// @Tags Search
// @Produce json
// @Param text query string true "Поисковый запрос"
// @Param placetype query []string false "Фильтр по placetype (повтор параметра или список через запятую)" collectionFormat(multi)
// @Param lang query string false "Трёхбуквенный код языка (eng, fra, deu...)"
// @Param mode query string false "live - последнее слово считается префиксом"
// @Success 200 {array} domain.Result
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	req := dto.SearchRequest{
		Text:       c.Query("text"),
		Placetypes: placetypeParam(c),
		Lang:       c.Query("lang"),
		Mode:       c.Query("mode"),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.searchUC.Search(ctx, req)
	if err != nil {
		h.logger.Error("Search failed", zap.String("text", req.Text), zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.JSON(res.Payload())
}

// SearchAddress godoc
// @Summary Разрешение структурированного адреса
// @Description Нормализует адрес, уточняет страну, индекс и регион по справочникам и ищет место. При валидных lat/lon возвращает ближайшее место по координатам.
// @Tags Search
// @Produce json
// @Param address query string false "Адрес"
// @Param city query string false "Город"
// @Param state query string false "Регион или код региона"
// @Param country query string false "Страна, alpha2 или alpha3"
// @Param postal_code query string false "Почтовый индекс"
// @Param text query string false "Свободный текст"
// @Param lat query number false "Широта"
// @Param lon query number false "Долгота"
// @Param ip query string false "IP клиента, используется при отсутствии текста и координат"
// @Param limit query int false "Количество результатов" default(1)
// @Param minimal query int false "1 - сокращённая форма результата"
// @Param mode query string false "live - режим автодополнения"
// @Param lang query string false "Трёхбуквенный код языка"
// @Param placetype query []string false "Фильтр по placetype" collectionFormat(multi)
// @Success 200 {array} domain.Result
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/search/address [get]
func (h *SearchHandler) SearchAddress(c *fiber.Ctx) error {
	req := dto.AddressRequest{
		Address:    c.Query("address"),
		City:       c.Query("city"),
		State:      c.Query("state"),
		Country:    c.Query("country"),
		PostalCode: c.Query("postal_code"),
		Text:       c.Query("text"),
		Lat:        utils.ParseCoordinate(c.Query("lat")),
		Lon:        utils.ParseCoordinate(c.Query("lon")),
		IP:         c.Query("ip"),
		Limit:      c.QueryInt("limit", 0),
		Minimal:    c.QueryInt("minimal", 0) > 0,
		Mode:       c.Query("mode"),
		Lang:       c.Query("lang"),
		Placetypes: placetypeParam(c),
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.searchUC.SearchAddress(ctx, req)
	if err != nil {
		h.logger.Error("Address search failed", zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.JSON(res.Payload())
}

// GetPlace godoc
// @Summary Место по ID
// @Tags Places
// @Produce json
// @Param id path int true "ID места"
// @Param lang query string false "Трёхбуквенный код языка"
// @Success 200 {object} domain.Result
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/places/{id} [get]
func (h *SearchHandler) GetPlace(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"id": c.Params("id"),
		}))
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	place, err := h.searchUC.GetPlace(ctx, id, c.Query("lang"))
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(place)
}

func (h *SearchHandler) requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(c.UserContext())
	}
	return context.WithTimeout(c.UserContext(), h.timeout)
}

// placetypeParam собирает placetype=a&placetype=b, placetype[]=a и placetype=a,b
func placetypeParam(c *fiber.Ctx) []string {
	args := c.Context().QueryArgs()
	var raw []string
	for _, key := range []string{"placetype", "placetype[]"} {
		for _, v := range args.PeekMulti(key) {
			raw = append(raw, string(v))
		}
	}
	return dto.ArrayParam(raw)
}

func invalidRequest(err error) *errors.AppError {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
		"error": err.Error(),
	})
}
