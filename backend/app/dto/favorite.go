package dto

import "timeblessed/store"

type FavoriteRequest struct {
	AppName string `json:"app_name"`
}

type FavoriteResponse struct {
	Package string `json:"package"`
	AppName string `json:"app_name"`
	AddedAt int64  `json:"added_at"`
}

func NewFavoriteResponse(f store.FavoriteApp) FavoriteResponse {
	return FavoriteResponse{Package: f.PackageName, AppName: f.AppName, AddedAt: f.AddedAt.Unix()}
}
