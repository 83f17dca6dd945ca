// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CivicWatch Authors

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/civicgrid/civicwatch/models"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	insertReport = `
		INSERT INTO reports (
			id,
			title,
			description,
			location,
			lat,
			lng,
			type,
			image,
			status,
			user_email,
			complaint_sent,
			complaint_status,
			ai_validation,
			created_at,
			updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING created_at, updated_at;`

	getSingleReport = `
		SELECT
			id,
			title,
			description,
			location,
			lat,
			lng,
			type,
			image,
			status,
			user_email,
			assigned_worker_id,
			assigned_worker,
			created_at,
			updated_at,
			started_at,
			completed_at,
			complaint_sent,
			complaint_status,
			complaint_sent_at,
			complaint_status_updated_at,
			ai_validation
		FROM reports
		WHERE id = $1;`

	insertNotification = `
		INSERT INTO notifications (
			id,
			title,
			message,
			report_id,
			recipient_email,
			recipient_role,
			read,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, false, NOW())
		RETURNING created_at;`

	markNotificationRead = `
		UPDATE notifications
		SET read = true, read_at = NOW()
		WHERE id = $1 AND read = false;`

	getAllWorkers = `
		SELECT id, name, email, status, assigned_tasks
		FROM workers
		ORDER BY name;`

	getSingleWorker = `
		SELECT id, name, email, status, assigned_tasks
		FROM workers
		WHERE id = $1;`

	upsertWorker = `
		INSERT INTO workers (id, name, email, status, assigned_tasks)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name           = excluded.name,
			email          = excluded.email,
			status         = excluded.status,
			assigned_tasks = excluded.assigned_tasks;`

	insertUser = `
		INSERT INTO users (id, email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING created_at;`

	findUserByEmail = `
		SELECT id, email, name, password_hash, role, created_at
		FROM users
		WHERE email = $1;`
)

// reportColumns is the canonical column order shared by every report SELECT.
var reportColumns = []string{
	"id",
	"title",
	"description",
	"location",
	"lat",
	"lng",
	"type",
	"image",
	"status",
	"user_email",
	"assigned_worker_id",
	"assigned_worker",
	"created_at",
	"updated_at",
	"started_at",
	"completed_at",
	"complaint_sent",
	"complaint_status",
	"complaint_sent_at",
	"complaint_status_updated_at",
	"ai_validation",
}

// buildReportsQuery composes the filtered, ordered report listing. Both
// backends must agree on matching and ordering semantics, so the predicates
// here mirror [models.ReportFilter.Matches] exactly.
func buildReportsQuery(filter models.ReportFilter) (string, []any, error) {
	q := psql.Select(reportColumns...).
		From("reports").
		OrderBy("created_at DESC", "id DESC")

	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Type != "" {
		q = q.Where(sq.Eq{"type": filter.Type})
	}
	if filter.UserEmail != "" {
		q = q.Where(sq.Eq{"user_email": filter.UserEmail})
	}
	if filter.AssignedWorkerID != "" {
		q = q.Where(sq.Eq{"assigned_worker_id": filter.AssignedWorkerID})
	}

	return q.ToSql()
}

// buildUpdateReportQuery builds the dynamic patch UPDATE. Only fields
// carried by the patch are touched; updated_at is always refreshed with the
// server clock.
func buildUpdateReportQuery(reportID string, patch models.ReportPatch, aiValidation []byte) (string, []any, error) {
	q := psql.Update("reports").
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": reportID})

	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		q = q.Set("description", *patch.Description)
	}
	if patch.Location != nil {
		q = q.Set("location", *patch.Location)
	}
	if patch.Coords != nil {
		q = q.Set("lat", patch.Coords.Latitude).Set("lng", patch.Coords.Longitude)
	}
	if patch.Type != nil {
		q = q.Set("type", *patch.Type)
	}
	if patch.Image != nil {
		q = q.Set("image", *patch.Image)
	}
	if patch.Status != nil {
		q = q.Set("status", string(*patch.Status))
	}
	if patch.AssignedWorkerID != nil {
		q = q.Set("assigned_worker_id", *patch.AssignedWorkerID)
	}
	if patch.AssignedWorker != nil {
		q = q.Set("assigned_worker", *patch.AssignedWorker)
	}
	if patch.StartedAt != nil {
		q = q.Set("started_at", *patch.StartedAt)
	}
	if patch.CompletedAt != nil {
		q = q.Set("completed_at", *patch.CompletedAt)
	}
	if patch.ComplaintSent != nil {
		q = q.Set("complaint_sent", *patch.ComplaintSent)
	}
	if patch.ComplaintStatus != nil {
		q = q.Set("complaint_status", *patch.ComplaintStatus)
	}
	if patch.ComplaintSentAt != nil {
		q = q.Set("complaint_sent_at", *patch.ComplaintSentAt)
	}
	if patch.ComplaintStatusUpdatedAt != nil {
		q = q.Set("complaint_status_updated_at", *patch.ComplaintStatusUpdatedAt)
	}
	if patch.AIValidation != nil {
		q = q.Set("ai_validation", aiValidation)
	}

	return q.ToSql()
}

// buildNotificationsQuery assembles the inbox listing. Non-empty recipient
// predicates are OR-ed, matching [models.NotificationFilter.Matches]; an
// empty filter returns everything.
func buildNotificationsQuery(filter models.NotificationFilter) (string, []any, error) {
	q := psql.Select(
		"id",
		"title",
		"message",
		"report_id",
		"recipient_email",
		"recipient_role",
		"read",
		"read_at",
		"created_at",
	).
		From("notifications").
		OrderBy("created_at DESC", "id DESC")

	recipients := sq.Or{}
	if filter.RecipientEmail != "" {
		recipients = append(recipients, sq.Eq{"recipient_email": filter.RecipientEmail})
	}
	if filter.RecipientRole != "" {
		recipients = append(recipients, sq.Eq{"recipient_role": string(filter.RecipientRole)})
	}
	if len(recipients) > 0 {
		q = q.Where(recipients)
	}

	return q.ToSql()
}
