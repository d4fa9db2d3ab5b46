package httpv1

import (
	"encoding/json"
	"errors"
	"net/http"

	logginghelper "github.com/Egor213/LogiSense/internal/controller/common/logging"
	"github.com/Egor213/LogiSense/internal/metrics"
	"github.com/Egor213/LogiSense/internal/service"
	errorsUtils "github.com/Egor213/LogiSense/pkg/errors"
	"github.com/labstack/echo/v4"
)

const enhanceHandler = "enhance"

var errContextNotObject = errors.New("Context must be a JSON object")

type enhanceRequest struct {
	Prompt  string          `json:"prompt"`
	Context json.RawMessage `json:"context"`
}

type enhanceResponse struct {
	Enhanced string `json:"enhanced"`
}

type EnhanceController struct {
	enhancer service.Enhancer
	counters *metrics.Counters
}

func NewEnhanceController(enhancer service.Enhancer, counters *metrics.Counters) *EnhanceController {
	return &EnhanceController{
		enhancer: enhancer,
		counters: counters,
	}
}

func (ec *EnhanceController) Enhance(c echo.Context) error {
	var req enhanceRequest
	// An unreadable body is handled as a request without a prompt.
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		req = enhanceRequest{}
	}

	promptContext, err := decodeContext(req.Context)
	if err != nil && req.Prompt != "" {
		ec.counters.HTTPRequests.Inc(enhanceHandler, "rejected")
		logginghelper.LogRejected(enhanceHandler, err)
		return newErrorResponse(c, http.StatusBadRequest, errContextNotObject.Error())
	}

	enhanced, err := ec.enhancer.Enhance(req.Prompt, promptContext)
	if err != nil {
		if errors.Is(err, service.ErrPromptRequired) {
			ec.counters.HTTPRequests.Inc(enhanceHandler, "rejected")
			logginghelper.LogRejected(enhanceHandler, err)
			return newErrorResponse(c, http.StatusBadRequest, err.Error())
		}
		ec.counters.HTTPRequests.Inc(enhanceHandler, "failed")
		return errorsUtils.WrapPathErr(err)
	}

	ec.counters.HTTPRequests.Inc(enhanceHandler, "ok")
	ec.counters.PromptsEnhanced.Inc()
	return c.JSON(http.StatusOK, enhanceResponse{Enhanced: enhanced})
}

// decodeContext accepts an absent or null context and otherwise requires
// a JSON object.
func decodeContext(raw json.RawMessage) (map[string]any, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var promptContext map[string]any
	if err := json.Unmarshal(raw, &promptContext); err != nil {
		return nil, errContextNotObject
	}
	return promptContext, nil
}
