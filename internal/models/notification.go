package models

// EntitlementChanged сообщение об изменении доступа пользователя,
// публикуется после фиксации транзакции вебхука.
type EntitlementChanged struct {
	UserUID  string `json:"user_uid"`
	Email    string `json:"email"`
	Entitled bool   `json:"entitled"`
	Status   string `json:"status"`
}
