package billing

// Bucket группа статусов подписки провайдера.
type Bucket string

// Группы статусов.
const (
	BucketEntitled   Bucket = "entitled"
	BucketAtRisk     Bucket = "at_risk"
	BucketTerminated Bucket = "terminated"
	BucketUnknown    Bucket = "unknown"
)

// BucketOf относит статус провайдера к группе. Неизвестные статусы попадают в BucketUnknown.
func BucketOf(status string) Bucket {
	switch status {
	case "active", "trialing":
		return BucketEntitled
	case "past_due", "unpaid":
		return BucketAtRisk
	case "canceled", "incomplete_expired":
		return BucketTerminated
	default:
		return BucketUnknown
	}
}

// Entitles сообщает, дает ли статус доступ к платным функциям.
func Entitles(status string) bool {
	return BucketOf(status) == BucketEntitled
}
