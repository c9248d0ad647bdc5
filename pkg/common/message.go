package common

// PickReason is the message used to indicate why the station server chose a queue
type PickReason string

const (
	// PickSpecialPriority represents special voters taking priority over a short normal queue
	PickSpecialPriority PickReason = `special priority`
	// PickSpecialOnly represents the normal queue being empty
	PickSpecialOnly PickReason = `normal queue empty`
	// PickNormalOnly represents the special queue being empty
	PickNormalOnly PickReason = `special queue empty`
	// PickNewerFront represents both queues being busy, the newer front ticket wins
	PickNewerFront PickReason = `newer front ticket`
)

func (p PickReason) String() string {
	return string(p)
}

// ConfigMessage is the message returned when a configuration is rejected
type ConfigMessage string

const (
	// ConfigDurationInvalid represents a non-positive simulation duration
	ConfigDurationInvalid ConfigMessage = `duration must be positive`
	// ConfigProbabilityInvalid represents a probability outside [0,1]
	ConfigProbabilityInvalid ConfigMessage = `probability must be within [0,1]`
	// ConfigStationsInvalid represents a non-positive station count
	ConfigStationsInvalid ConfigMessage = `station count must be positive`
	// ConfigOffsetInvalid represents a negative report offset
	ConfigOffsetInvalid ConfigMessage = `report offset must not be negative`
	// ConfigTickInvalid represents a non-positive tick
	ConfigTickInvalid ConfigMessage = `tick must be positive`
	// ConfigServiceTicksInvalid represents a non-positive service tick count
	ConfigServiceTicksInvalid ConfigMessage = `service ticks must be positive`
)

func (c ConfigMessage) String() string {
	return string(c)
}
