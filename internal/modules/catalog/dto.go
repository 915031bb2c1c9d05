package catalog

import (
	"moviehub/internal/domain"
	"moviehub/internal/paging"
	"moviehub/internal/pkg/response"
	"moviehub/internal/tmdb"
)

// PageResponse is a page plus the upstream page size, which clients use
// only as a placeholder hint.
type PageResponse[T any] struct {
	domain.Page[T]
	PageSize int `json:"page_size"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HomeSectionResponse struct {
	Kind  domain.ListingKind                `json:"kind"`
	Page  *PageResponse[domain.ListingItem] `json:"page,omitempty"`
	Error *ErrorBody                        `json:"error,omitempty"`
}

type HomeResponse struct {
	Sections []HomeSectionResponse `json:"sections"`
}

type GenreListResponse struct {
	Genres []domain.Genre `json:"genres"`
}

type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}

func ToPageResponse[T any](p domain.Page[T]) PageResponse[T] {
	if p.Items == nil {
		p.Items = []T{}
	}
	return PageResponse[T]{Page: p, PageSize: paging.DefaultPageSize}
}

func ToHomeResponse(sections []HomeSection) []HomeSectionResponse {
	out := make([]HomeSectionResponse, 0, len(sections))
	for _, s := range sections {
		item := HomeSectionResponse{Kind: s.Kind}
		if s.Err != nil {
			_, code, msg := response.FetchStatus(tmdb.KindOf(s.Err))
			item.Error = &ErrorBody{Code: code, Message: msg}
		} else {
			page := ToPageResponse(s.Page)
			item.Page = &page
		}
		out = append(out, item)
	}
	return out
}
