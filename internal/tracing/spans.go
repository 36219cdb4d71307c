package tracing

// Span names.
const (
	SpanTick        = "scheduler.tick"
	SpanReconfigure = "scheduler.reconfigure"
	SpanEvaluate    = "timeago.evaluate"
)

// Span attribute keys.
const (
	AttrSchedulerID = "scheduler.id"
	AttrUnit        = "timeago.unit"
	AttrMagnitude   = "timeago.magnitude"
	AttrLocale      = "timeago.locale"
	AttrIntervalMs  = "scheduler.interval_ms"
	AttrRearmed     = "scheduler.rearmed"
)

// Span event names.
const (
	EventTimerCancelled = "timer.cancelled"
	EventTimerArmed     = "timer.armed"
)
