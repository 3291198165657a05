// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The onlyfan Authors

package models

import "time"

// Post is a single entry of the posts.json collection.
type Post struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Image    *string   `json:"image"`
	Likes    int       `json:"likes"`
	Tips     *float64  `json:"tips"`
	Comments int       `json:"comments"`
	Locked   bool      `json:"locked"`
	Price    *float64  `json:"price"`
	Date     time.Time `json:"date"`
}

// Profile is the profile.json record.
type Profile struct {
	Name        string `json:"name" validate:"required"`
	Handle      string `json:"handle" validate:"required"`
	Bio         string `json:"bio"`
	Avatar      string `json:"avatar"`
	Banner      string `json:"banner"`
	Subscribers int    `json:"subscribers" validate:"gte=0"`
	TotalLikes  int    `json:"totalLikes" validate:"gte=0"`
}

// PostDraft is the user input a new post is built from. Nil pointers mean
// "not supplied".
type PostDraft struct {
	Text     string     `validate:"required_without=Image"`
	Image    string     `validate:"required_without=Text"`
	Likes    *int       `validate:"omitempty,gte=0"`
	Tips     *float64   `validate:"omitempty,gte=0"`
	Comments int        `validate:"gte=0"`
	Locked   bool
	Price    *float64   `validate:"omitempty,gte=0"`
	Date     *time.Time
}

// PostsSnapshot is the posts collection together with the version it was
// read at.
type PostsSnapshot struct {
	Posts   []Post
	Version Version
}

// ProfileSnapshot is the profile record together with the version it was
// read at.
type ProfileSnapshot struct {
	Profile Profile
	Version Version
}
