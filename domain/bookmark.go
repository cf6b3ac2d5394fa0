package domain

import (
	"errors"
	"time"
)

type BookmarkRecord struct {
	id        string
	text      string
	createdAt time.Time
	author    string
	tags      []string
}

func NewBookmarkRecord(id, text string, createdAt time.Time, author string, tags []string) (*BookmarkRecord, error) {
	if id == "" {
		return nil, errors.New("bookmark ID cannot be empty")
	}

	return &BookmarkRecord{
		id:        id,
		text:      text,
		createdAt: createdAt,
		author:    author,
		tags:      tags,
	}, nil
}

func (b *BookmarkRecord) ID() string {
	return b.id
}

func (b *BookmarkRecord) Text() string {
	return b.text
}

func (b *BookmarkRecord) CreatedAt() time.Time {
	return b.createdAt
}

func (b *BookmarkRecord) Author() string {
	return b.author
}

func (b *BookmarkRecord) Tags() []string {
	return b.tags
}

func (b *BookmarkRecord) HasTag(tag string) bool {
	if tag == "" {
		return false
	}

	for _, t := range b.tags {
		if t == tag {
			return true
		}
	}
	return false
}
