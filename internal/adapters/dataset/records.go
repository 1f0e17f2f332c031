package dataset

// The records mirror the YAML document. Users and swaps reference skills and
// users by ID; Build resolves them into model values.

type document struct {
	Skills        []skillRecord        `yaml:"skills" validate:"required,min=1,dive"`
	Users         []userRecord         `yaml:"users" validate:"dive"`
	Swaps         []swapRecord         `yaml:"swaps" validate:"dive"`
	Notifications []notificationRecord `yaml:"notifications" validate:"dive"`
	Conversations []conversationRecord `yaml:"conversations" validate:"dive"`
	Messages      []messageRecord      `yaml:"messages" validate:"dive"`
	Reviews       []reviewRecord       `yaml:"reviews" validate:"dive"`
}

type skillRecord struct {
	ID          string `yaml:"id" validate:"required"`
	Name        string `yaml:"name" validate:"required"`
	Category    string `yaml:"category" validate:"required"`
	Level       string `yaml:"level" validate:"required,skill_level"`
	Description string `yaml:"description"`
}

type userRecord struct {
	ID            string   `yaml:"id" validate:"required"`
	Name          string   `yaml:"name" validate:"required"`
	Email         string   `yaml:"email" validate:"omitempty,email"`
	Bio           string   `yaml:"bio"`
	Location      string   `yaml:"location"`
	Rating        float64  `yaml:"rating" validate:"gte=0,lte=5"`
	ReviewCount   int      `yaml:"review_count" validate:"gte=0"`
	SkillsOffered []string `yaml:"skills_offered" validate:"dive,required"`
	SkillsWanted  []string `yaml:"skills_wanted" validate:"dive,required"`
	Online        bool     `yaml:"online"`
	LastSeen      string   `yaml:"last_seen"`
	JoinedAt      string   `yaml:"joined_at"`
}

type swapRecord struct {
	ID               string `yaml:"id" validate:"required"`
	FromUserID       string `yaml:"from_user_id" validate:"required"`
	ToUserID         string `yaml:"to_user_id" validate:"required,nefield=FromUserID"`
	OfferedSkillID   string `yaml:"offered_skill_id" validate:"required"`
	RequestedSkillID string `yaml:"requested_skill_id" validate:"required"`
	Status           string `yaml:"status" validate:"required,swap_status"`
	Message          string `yaml:"message"`
	CreatedAt        string `yaml:"created_at"`
	UpdatedAt        string `yaml:"updated_at"`
}

type notificationRecord struct {
	ID        string `yaml:"id" validate:"required"`
	UserID    string `yaml:"user_id" validate:"required"`
	Kind      string `yaml:"kind" validate:"required"`
	Title     string `yaml:"title" validate:"required"`
	Message   string `yaml:"message"`
	Read      bool   `yaml:"read"`
	CreatedAt string `yaml:"created_at"`
	ActionURL string `yaml:"action_url"`
}

type conversationRecord struct {
	ID           string   `yaml:"id" validate:"required"`
	Participants []string `yaml:"participants" validate:"min=2,unique,dive,required"`
	SwapID       string   `yaml:"swap_id"`
	UpdatedAt    string   `yaml:"updated_at"`
}

type messageRecord struct {
	ID             string `yaml:"id" validate:"required"`
	ConversationID string `yaml:"conversation_id" validate:"required"`
	SenderID       string `yaml:"sender_id" validate:"required"`
	Content        string `yaml:"content" validate:"required"`
	Kind           string `yaml:"kind" validate:"omitempty,oneof=text system"`
	Read           bool   `yaml:"read"`
	SentAt         string `yaml:"sent_at"`
}

type skillRatingRecord struct {
	SkillID string `yaml:"skill_id" validate:"required"`
	Rating  int    `yaml:"rating" validate:"gte=1,lte=5"`
}

type reviewRecord struct {
	ID           string              `yaml:"id" validate:"required"`
	ReviewerID   string              `yaml:"reviewer_id" validate:"required"`
	RevieweeID   string              `yaml:"reviewee_id" validate:"required,nefield=ReviewerID"`
	SwapID       string              `yaml:"swap_id" validate:"required"`
	Rating       int                 `yaml:"rating" validate:"gte=1,lte=5"`
	Comment      string              `yaml:"comment"`
	SkillRatings []skillRatingRecord `yaml:"skill_ratings" validate:"dive"`
	CreatedAt    string              `yaml:"created_at"`
}
