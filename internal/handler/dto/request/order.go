package request

type TransitionOrderRequest struct {
	To string `json:"to" binding:"required"`
}

type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ReturnOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}
