package common

const (
	// TickRate is the fixed simulation rate in ticks per second.
	TickRate = 50

	ScreenWidth  = 720
	ScreenHeight = 720
)
