package observability

// Common structured log field keys.
const (
	FieldService   = "service"
	FieldModule    = "module"
	FieldOperation = "operation"
	FieldRoundID   = "round_id"
	FieldPlayerID  = "player_id"
	FieldCourseID  = "course_id"
	FieldTopic     = "topic"
	FieldError     = "error"
)
