package counter

import (
	"strconv"

	"github.com/weegigs/wee-counter/we"
)

type Counter struct {
	Current int64 `json:"current"`
}

func (Counter) EntityType() we.EntityType {
	return "counter"
}

func (state Counter) String() string {
	return strconv.FormatInt(state.Current, 10)
}
