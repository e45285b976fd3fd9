package code

import (
	"errors"
	"fmt"
)

type ErrCode int

const (
	Success ErrCode = 0

	ParamErr        ErrCode = 1001
	UnDefineErr     ErrCode = 1002
	InternalErr     ErrCode = 1004
	UnknownWSAction ErrCode = 1005

	RPCHttpErr      ErrCode = 2001
	RPCHttpCodeErr  ErrCode = 2002
	RPCRateLimitErr ErrCode = 2003

	UnmarshalWSDataErr             ErrCode = 4001
	NotifyActionAlreadyRegistryErr ErrCode = 4002
	NotifySendMsgErr               ErrCode = 4003
	RedisNotInitErr                ErrCode = 4004
)

var codeMsg = map[ErrCode]string{
	Success:                        "success",
	ParamErr:                       "param err",
	UnDefineErr:                    "undefined err",
	InternalErr:                    "internal err",
	UnknownWSAction:                "unknown ws action",
	RPCHttpErr:                     "rpc http err",
	RPCHttpCodeErr:                 "rpc http code err",
	RPCRateLimitErr:                "rpc rate limit err",
	UnmarshalWSDataErr:             "unmarshal ws data err",
	NotifyActionAlreadyRegistryErr: "notify action already registry",
	NotifySendMsgErr:               "notify send msg err",
	RedisNotInitErr:                "redis not init",
}

func (c ErrCode) String() string {
	if msg, ok := codeMsg[c]; ok {
		return msg
	}
	return fmt.Sprintf("code: %d", int(c))
}

func (c ErrCode) Error() string {
	return c.String()
}

func (c ErrCode) Int() int {
	return int(c)
}

func (c ErrCode) WithMsg(msg string) *Error {
	return &Error{Code: c, Msg: msg}
}

func (c ErrCode) WithMsgf(format string, args ...any) *Error {
	return &Error{Code: c, Msg: fmt.Sprintf(format, args...)}
}

func (c ErrCode) WithErr(err error) *Error {
	e := &Error{Code: c, Err: err}
	if err != nil {
		e.Msg = err.Error()
	}
	return e
}

// Error carries a code together with the message that is shown to callers.
type Error struct {
	Code ErrCode
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Code.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	c, ok := target.(ErrCode)
	return ok && c == e.Code
}

// Of extracts the code from err, falling back to UnDefineErr.
func Of(err error) ErrCode {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c ErrCode
	if errors.As(err, &c) {
		return c
	}
	return UnDefineErr
}
