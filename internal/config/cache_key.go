package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// BoardsKey returns the cache key for the full board list.
func (r *CacheKeyStruct) BoardsKey() string {
	return "curriculum:boards"
}

// SubjectsKey returns the cache key for a board's subject list.
func (r *CacheKeyStruct) SubjectsKey(boardID int) string {
	return fmt.Sprintf("curriculum:board:%d:subjects", boardID)
}

// ChaptersKey returns the cache key for a subject's chapter list.
func (r *CacheKeyStruct) ChaptersKey(subjectID int) string {
	return fmt.Sprintf("curriculum:subject:%d:chapters", subjectID)
}

// ResetTokenKey returns the cache key holding the user id behind a
// password-reset token.
func (r *CacheKeyStruct) ResetTokenKey(token string) string {
	return fmt.Sprintf("pwreset:%s", token)
}

var CacheKey = NewCacheKeyStruct()
