package compound

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/olahol/melody"
	"github.com/scienceol/chemcheck/pkg/common"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/scienceol/chemcheck/pkg/core/compound"
	"github.com/scienceol/chemcheck/pkg/core/validate"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
)

const maxMessageSize = 64 * 1024

const (
	ActionResolve  = "resolve"
	ActionValidate = "validate"
)

type ResolveReq struct {
	Name string `json:"name" form:"name" binding:"required"`
}

// wsReq is a client frame; which name fields are read depends on Action.
type wsReq struct {
	common.WsMsgType
	Name     string `json:"name"`
	Reactant string `json:"reactant"`
	Product  string `json:"product"`
}

type wsReply struct {
	common.WsMsgType
	Data  any           `json:"data,omitempty"`
	Error *common.Error `json:"error,omitempty"`
}

type Handle struct {
	cService compound.Service
	vService validate.Service
	wsClient *melody.Melody
}

func NewCompoundHandle(cService compound.Service, vService validate.Service) *Handle {
	wsClient := melody.New()
	wsClient.Config.MaxMessageSize = maxMessageSize

	h := &Handle{
		cService: cService,
		vService: vService,
		wsClient: wsClient,
	}
	h.initCompoundWebSocket()
	return h
}

// Resolve godoc
// @Summary	Resolve a compound name against PubChem
// @Tags		compound
// @Produce	json
// @Param		name	query		string	true	"compound name"
// @Success	200		{object}	common.Resp{data=compound.Result}
// @Router		/v1/compound/resolve [get]
func (h *Handle) Resolve(ctx *gin.Context) {
	req := &ResolveReq{}
	if err := ctx.ShouldBindQuery(req); err != nil {
		logger.Errorf(ctx, "parse Resolve param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.ReplyOk(ctx, h.cService.Resolve(ctx, strings.TrimSpace(req.Name)))
}

// Validate godoc
// @Summary	Validate a reactant and product pair
// @Tags		compound
// @Accept		json
// @Produce	json
// @Param		req	body		validate.ValidateReq	true	"reactant and product names"
// @Success	200	{object}	common.Resp{data=validate.Report}
// @Router		/v1/compound/validate [post]
func (h *Handle) Validate(ctx *gin.Context) {
	req := &validate.ValidateReq{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		logger.Errorf(ctx, "parse Validate param err: %+v", err.Error())
		common.ReplyErr(ctx, code.ParamErr, err.Error())
		return
	}
	common.ReplyOk(ctx, h.vService.Validate(ctx, req))
}

// Connect godoc
// @Summary	Resolve and validate over a websocket
// @Tags		compound
// @Success	101
// @Router		/v1/ws/compound [get]
func (h *Handle) Connect(ctx *gin.Context) {
	if err := h.wsClient.HandleRequestWithKeys(ctx.Writer, ctx.Request, map[string]any{
		"ctx": ctx,
	}); err != nil {
		logger.Errorf(ctx, "compound HandleRequestWithKeys err: %+v", err)
	}
}

func (h *Handle) Close(ctx context.Context) {
	if err := h.wsClient.Close(); err != nil && !errors.Is(err, melody.ErrClosed) {
		logger.Warnf(ctx, "close compound ws err: %+v", err)
	}
}

func (h *Handle) initCompoundWebSocket() {
	h.wsClient.HandleDisconnect(func(s *melody.Session) {
		if ctx, ok := s.Get("ctx"); ok {
			logger.Infof(ctx.(context.Context), "compound ws client disconnected")
		}
	})

	h.wsClient.HandleError(func(s *melody.Session, err error) {
		if errors.Is(err, melody.ErrMessageBufferFull) {
			return
		}
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) && (closeErr.Code == websocket.CloseGoingAway ||
			closeErr.Code == websocket.CloseNormalClosure) {
			return
		}
		if ctx, ok := s.Get("ctx"); ok {
			logger.Errorf(ctx.(context.Context), "compound ws error: %+v", err)
		}
	})

	h.wsClient.HandleConnect(func(s *melody.Session) {
		if ctx, ok := s.Get("ctx"); ok {
			logger.Infof(ctx.(context.Context), "compound ws connect remote: %s", s.RemoteAddr())
		}
	})

	h.wsClient.HandleMessage(func(s *melody.Session, b []byte) {
		ctxI, ok := s.Get("ctx")
		if !ok {
			if err := s.CloseWithMsg([]byte("no ctx")); err != nil {
				logger.Errorf(context.Background(), "HandleMessage ctx not exist CloseWithMsg err: %+v", err)
			}
			return
		}
		ctx := ctxI.(context.Context)
		if err := h.onWSMsg(ctx, s, b); err != nil {
			logger.Errorf(ctx, "compound handle msg err: %+v", err)
		}
	})
}

func (h *Handle) onWSMsg(ctx context.Context, s *melody.Session, b []byte) error {
	req := &wsReq{}
	if err := json.Unmarshal(b, req); err != nil {
		return h.replyErr(s, req.WsMsgType, code.UnmarshalWSDataErr.WithErr(err))
	}

	switch req.Action {
	case ActionResolve:
		return h.reply(s, req.WsMsgType, h.cService.Resolve(ctx, strings.TrimSpace(req.Name)))
	case ActionValidate:
		return h.reply(s, req.WsMsgType, h.vService.Validate(ctx, &validate.ValidateReq{
			Reactant: req.Reactant,
			Product:  req.Product,
		}))
	default:
		return h.replyErr(s, req.WsMsgType, code.UnknownWSAction.WithMsgf("unknown action %q", req.Action))
	}
}

func (h *Handle) reply(s *melody.Session, msgType common.WsMsgType, data any) error {
	b, err := json.Marshal(&wsReply{WsMsgType: msgType, Data: data})
	if err != nil {
		return err
	}
	return s.Write(b)
}

func (h *Handle) replyErr(s *melody.Session, msgType common.WsMsgType, err error) error {
	b, mErr := json.Marshal(&wsReply{
		WsMsgType: msgType,
		Error:     &common.Error{Msg: err.Error()},
	})
	if mErr != nil {
		return mErr
	}
	if wErr := s.Write(b); wErr != nil {
		return wErr
	}
	return err
}
