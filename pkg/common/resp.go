package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scienceol/chemcheck/pkg/common/code"
)

type Error struct {
	Msg  string   `json:"msg"`
	Info []string `json:"info,omitempty"`
}

type Resp struct {
	Code  code.ErrCode `json:"code"`
	Data  any          `json:"data,omitempty"`
	Error *Error       `json:"error,omitempty"`
}

type WsMsgType struct {
	Action  string `json:"action"`
	MsgUUID string `json:"msg_uuid,omitempty"`
}

func ReplyOk(ctx *gin.Context, data ...any) {
	resp := &Resp{Code: code.Success}
	if len(data) > 0 {
		resp.Data = data[0]
	}
	ctx.JSON(http.StatusOK, resp)
}

func ReplyErr(ctx *gin.Context, err error, msg ...string) {
	resp := &Resp{
		Code:  code.Of(err),
		Error: &Error{Msg: err.Error(), Info: msg},
	}
	ctx.JSON(http.StatusOK, resp)
}
