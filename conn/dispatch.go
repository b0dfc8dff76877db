package conn

import "github.com/Penguin-Spy/quasar/proto"

type handlerFunc func(*Connection, *proto.Reader) error

// dispatchTables maps (state, packet id) to its handler.
// Each phase file registers its own entries from an init func, so adding a
// packet never requires touching this file.
var dispatchTables = map[State]map[int32]handlerFunc{
	StateHandshake:            {},
	StateStatus:               {},
	StateLogin:                {},
	StateLoginWaitEncrypt:     {},
	StateLoginWaitAck:         {},
	StateConfiguration:        {},
	StateConfigurationWaitAck: {},
	StatePlay:                 {},
}

func register(state State, id int32, fn handlerFunc) {
	dispatchTables[state][id] = fn
}
