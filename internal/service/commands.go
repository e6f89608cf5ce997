package service

import "time"

// SendMessageCommand schedules one message. SendAt carries a wall-clock time;
// its Location is ignored and replaced by Timezone.
type SendMessageCommand struct {
	To       string    `json:"to"`
	Body     string    `json:"body"`
	SendAt   time.Time `json:"send_at"`
	Timezone string    `json:"timezone"`
}

type SendBulkCommand struct {
	Recipients []string  `json:"recipients"`
	Body       string    `json:"body"`
	SendAt     time.Time `json:"send_at"`
	Timezone   string    `json:"timezone"`
}
