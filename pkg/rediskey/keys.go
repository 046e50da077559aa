package rediskey

import "time"

const TotalRegistrations = "aurora:registrations:total"

const TotalRegistrationsExpiration = time.Minute * 5

const NotFound = -1

func ConversationState(family, userID string) string {
	return "aurora:conversation:" + family + ":" + userID
}

func UserLock(key string) string {
	return "aurora:lock:" + key
}

func Throttle(userID string) string {
	return "aurora:throttle:" + userID
}

func Document(key string) string {
	return "aurora:document:" + key
}

func RequestsByType(typeStr string) string {
	return "aurora:requests:type:" + typeStr
}

func UserRateLimitGeneral(userID string) string {
	return "aurora:ratelimit:general:" + userID
}

func UserRateLimitSpecific(userID, cmdType string) string {
	return "aurora:ratelimit:" + cmdType + ":" + userID
}
