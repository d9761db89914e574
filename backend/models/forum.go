package models

import "gorm.io/gorm"

// Lightweight per-lesson discussion threads.

type LessonThread struct {
	gorm.Model
	LessonID uint
	UserID   uint
	UserName string
	Title    string
	Body     string
	Replies  []ThreadReply
}

type ThreadReply struct {
	gorm.Model
	LessonThreadID uint
	UserID         uint
	UserName       string
	Body           string
}
