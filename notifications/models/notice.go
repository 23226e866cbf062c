// Copyright (c) 2024 Wepo Social
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import "time"

// NoticeType enumerates what triggered a notice.
type NoticeType int16

const (
	// NoticeTypeComment is sent to a post author when someone comments.
	NoticeTypeComment NoticeType = 1
)

// Notice is a durable message addressed to one user. Only the Read flag is
// ever mutated after insert, flipped on delivery to the addressee.
type Notice struct {
	ID          int64      `db:"id" json:"id,string"`
	SenderID    int64      `db:"sender_id" json:"senderId"`
	NoticeType  NoticeType `db:"notice_type" json:"noticeType"`
	SenderObjID string     `db:"sender_obj_id" json:"senderObjId"`
	AddresseeID int64      `db:"addressee_id" json:"addresseeId"`
	Read        bool       `db:"read" json:"read"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
}

// NoticePageResult wraps a page of notices with a has-more flag.
type NoticePageResult struct {
	Page int64    `json:"page"`
	Next bool     `json:"next"`
	List []Notice `json:"list"`
}
