package events

import (
	"context"

	"github.com/alphadose/haxmap"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/scienceol/chemcheck/pkg/core/notify"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/utils"
)

type localHandler struct {
	ctx    context.Context
	handle notify.HandleFunc
}

// Local delivers messages inside the current process. Handlers run on the
// broadcasting goroutine and must not block.
type Local struct {
	handlers *haxmap.Map[string, *localHandler]
}

func NewLocal() *Local {
	return &Local{handlers: haxmap.New[string, *localHandler]()}
}

func (l *Local) Registry(ctx context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	if _, loaded := l.handlers.GetOrSet(string(msgName), &localHandler{ctx: ctx, handle: handleFunc}); loaded {
		return code.NotifyActionAlreadyRegistryErr.WithMsg(string(msgName))
	}
	return nil
}

func (l *Local) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	data, err := encode(msg)
	if err != nil {
		logger.Errorf(ctx, "marshal msg fail action: %s, err: %+v", msg.Channel, err)
		return code.NotifySendMsgErr.WithErr(err)
	}

	h, ok := l.handlers.Get(string(msg.Channel))
	if !ok {
		return nil
	}
	if h.ctx.Err() != nil {
		l.handlers.Del(string(msg.Channel))
		return nil
	}

	var handleErr error
	if err := utils.SafelyRun(func() { handleErr = h.handle(h.ctx, string(data)) }); err != nil {
		logger.Errorf(ctx, "local handle msg panic name: %s, err: %+v", msg.Channel, err)
		return nil
	}
	if handleErr != nil {
		logger.Errorf(ctx, "local handle msg fail name: %s, err: %+v", msg.Channel, handleErr)
	}
	return nil
}

func (l *Local) Close(_ context.Context) error {
	var keys []string
	l.handlers.ForEach(func(k string, _ *localHandler) bool {
		keys = append(keys, k)
		return true
	})
	l.handlers.Del(keys...)
	return nil
}
