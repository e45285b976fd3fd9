package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	r "github.com/redis/go-redis/v9"
	"github.com/scienceol/chemcheck/pkg/common/code"
	"github.com/scienceol/chemcheck/pkg/common/uuid"
	"github.com/scienceol/chemcheck/pkg/core/notify"
	"github.com/scienceol/chemcheck/pkg/middleware/logger"
	"github.com/scienceol/chemcheck/pkg/middleware/redis"
	"github.com/scienceol/chemcheck/pkg/utils"
)

// Events broadcasts through redis pub/sub so every apiserver replica sees
// every message.

var (
	once   sync.Once
	center notify.MsgCenter
)

type Events struct {
	actions sync.Map
	subs    sync.Map
	client  *r.Client
	wait    sync.WaitGroup
}

// NewEvents returns the process-wide center: redis backed when a redis
// client has been initialized, in-process otherwise.
func NewEvents() notify.MsgCenter {
	once.Do(func() {
		if client := redis.GetClient(); client != nil {
			center = NewRedisEvents(client)
			return
		}
		center = NewLocal()
	})

	return center
}

func NewRedisEvents(client *r.Client) *Events {
	return &Events{client: client}
}

func (e *Events) Registry(ctx context.Context, msgName notify.Action, handleFunc notify.HandleFunc) error {
	if _, ok := e.actions.LoadOrStore(msgName, handleFunc); ok {
		return code.NotifyActionAlreadyRegistryErr.WithMsg(string(msgName))
	}

	sub := e.client.Subscribe(ctx, string(msgName))
	e.subs.Store(msgName, sub)

	e.wait.Add(1)
	utils.SafelyGo(func() {
		defer e.wait.Done()

		ch := sub.Channel()
		for {
			select {
			case msg, ok := <-ch:
				if !ok {
					logger.Infof(ctx, "exit redis channel name: %s", string(msgName))
					e.actions.Delete(msgName)
					e.subs.Delete(msgName)
					return
				}

				if msg == nil {
					continue
				}
				e.handle(ctx, msgName, handleFunc, msg.Payload)
			case <-ctx.Done():
				logger.Infof(ctx, "exit redis channel name: %s", string(msgName))
				e.unsubscribe(context.Background(), msgName, sub)
				return
			}
		}
	}, func(err error) {
		logger.Errorf(ctx, "Registry handle msg err: %+v", err)
		e.unsubscribe(context.Background(), msgName, sub)
	})
	return nil
}

// handle runs one message; a panicking handler loses that message only.
func (e *Events) handle(ctx context.Context, msgName notify.Action, handleFunc notify.HandleFunc, payload string) {
	var handleErr error
	if err := utils.SafelyRun(func() { handleErr = handleFunc(ctx, payload) }); err != nil {
		logger.Errorf(ctx, "handle redis msg panic name: %s, err: %+v", msgName, err)
		return
	}
	if handleErr != nil {
		logger.Errorf(ctx, "handle redis msg fail name: %s, err: %+v", msgName, handleErr)
	}
}

// unsubscribe releases the subscription connection and frees msgName for a
// new Registry.
func (e *Events) unsubscribe(ctx context.Context, msgName notify.Action, sub *r.PubSub) {
	if err := sub.Unsubscribe(ctx, string(msgName)); err != nil {
		logger.Errorf(ctx, "unsubscribe fail msg name: %s, err: %+v", msgName, err)
	}
	if err := sub.Close(); err != nil {
		logger.Warnf(ctx, "close pubsub msg name: %s, err: %+v", msgName, err)
	}
	e.subs.Delete(msgName)
	e.actions.Delete(msgName)
}

func (e *Events) Broadcast(ctx context.Context, msg *notify.SendMsg) error {
	data, err := encode(msg)
	if err != nil {
		logger.Errorf(ctx, "marshal msg fail action: %s, err: %+v", msg.Channel, err)
		return code.NotifySendMsgErr.WithErr(err)
	}

	ret := e.client.Publish(ctx, string(msg.Channel), data)
	if ret.Err() != nil {
		logger.Errorf(ctx, "send msg fail action: %s, err: %+v", msg.Channel, ret.Err())
		return code.NotifySendMsgErr
	}

	return nil
}

func (e *Events) Close(ctx context.Context) error {
	e.subs.Range(func(_, value any) bool {
		if err := value.(*r.PubSub).Close(); err != nil {
			logger.Warnf(ctx, "close pubsub err: %+v", err)
		}
		return true
	})
	e.wait.Wait()
	return nil
}

func encode(msg *notify.SendMsg) ([]byte, error) {
	msg.Timestamp = time.Now().Unix()
	if msg.UUID.IsNil() {
		msg.UUID = uuid.NewV4()
	}
	return json.Marshal(msg)
}
