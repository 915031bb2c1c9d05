package repository

import "errors"

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidFavorite  = errors.New("favorite must have a positive id")
)
