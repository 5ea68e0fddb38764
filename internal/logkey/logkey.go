package logkey

const (
	RequestID = "request_id"
	Error     = "error"
	Method    = "method"
	Path      = "path"
	Status    = "status"
	Latency   = "latency_ms"
	ProductID = "product_id"
	OrderID   = "order_id"
	Amount    = "amount"
	Provider  = "provider"
)
