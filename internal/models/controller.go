package models

type ControllerState string

const (
	ControllerStateStopped  ControllerState = "stopped"
	ControllerStateRunning  ControllerState = "running"
	ControllerStateShutDown ControllerState = "shut_down"
)

type ControllerStatus struct {
	State     ControllerState
	Pending   int
	Finished  int
	Completed uint64
	Delivered uint64
}
