package model

type ProgressStatus string

const (
	NotStarted ProgressStatus = "not_started"
	InProgress ProgressStatus = "in_progress"
	Completed  ProgressStatus = "completed"
)

// NodeProgress registra el avance de un usuario sobre un nodo de aprendizaje.
// Una fila por par (usuario, nodo).
type NodeProgress struct {
	BaseModel
	UserID           uint           `gorm:"uniqueIndex:idx_user_node;not null" json:"userId"`
	NodeID           string         `gorm:"uniqueIndex:idx_user_node;type:varchar(36);not null" json:"nodeId"`
	Status           ProgressStatus `gorm:"type:enum('not_started','in_progress','completed');default:'not_started'" json:"status"`
	Progress         float64        `gorm:"default:0" json:"progress"`
	TimeSpentMinutes int            `gorm:"default:0" json:"timeSpentMinutes"`
}

func (NodeProgress) TableName() string {
	return "user_node_progress"
}
