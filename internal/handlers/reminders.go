package handlers

import (
	"context"

	"github.com/habithub/habithub-api/internal/models"
	"github.com/habithub/habithub-api/internal/service"
	"github.com/habithub/habithub-api/internal/store"
)

type ReminderHandler struct {
	engine *service.Engine
}

func NewReminderHandler(engine *service.Engine) *ReminderHandler {
	return &ReminderHandler{engine: engine}
}

type CreateReminderRequest struct {
	Body struct {
		HabitID string `json:"habit_id" minLength:"1"`
		Time    string `json:"time" pattern:"^([01][0-9]|2[0-3]):[0-5][0-9]$" doc:"Time of day, HH:MM"`
		Days    []int  `json:"days" minItems:"1" doc:"Weekdays, 0 is Sunday"`
		Enabled *bool  `json:"enabled,omitempty" doc:"Defaults to true"`
		Message string `json:"message,omitempty" maxLength:"500"`
	}
}

type ReminderResponse struct {
	Body models.Reminder
}

func (h *ReminderHandler) HandleCreate(ctx context.Context, input *CreateReminderRequest) (*ReminderResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b := input.Body
	r, err := h.engine.CreateReminder(ctx, userID, models.Reminder{
		HabitID: b.HabitID,
		Time:    b.Time,
		Days:    b.Days,
		Message: b.Message,
	}, b.Enabled)
	if err != nil {
		return nil, apiError(err)
	}
	return &ReminderResponse{Body: r}, nil
}

type ListRemindersRequest struct {
	HabitID string `query:"habit_id" doc:"Only reminders of this habit"`
}

type ListRemindersResponse struct {
	Body []models.Reminder
}

func (h *ReminderHandler) HandleList(ctx context.Context, input *ListRemindersRequest) (*ListRemindersResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	list, err := h.engine.ListReminders(ctx, userID, input.HabitID)
	if err != nil {
		return nil, apiError(err)
	}
	return &ListRemindersResponse{Body: nonNil(list)}, nil
}

type UpdateReminderRequest struct {
	ID   string `path:"id"`
	Body struct {
		Time    *string `json:"time,omitempty" pattern:"^([01][0-9]|2[0-3]):[0-5][0-9]$"`
		Days    []int   `json:"days,omitempty"`
		Enabled *bool   `json:"enabled,omitempty"`
		Message *string `json:"message,omitempty" maxLength:"500"`
	}
}

func (h *ReminderHandler) HandleUpdate(ctx context.Context, input *UpdateReminderRequest) (*ReminderResponse, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	b := input.Body
	r, err := h.engine.UpdateReminder(ctx, userID, input.ID, store.ReminderPatch{
		Time:    b.Time,
		Days:    b.Days,
		Enabled: b.Enabled,
		Message: b.Message,
	})
	if err != nil {
		return nil, apiError(err)
	}
	return &ReminderResponse{Body: r}, nil
}

type ReminderIDRequest struct {
	ID string `path:"id"`
}

func (h *ReminderHandler) HandleDelete(ctx context.Context, input *ReminderIDRequest) (*struct{}, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.engine.DeleteReminder(ctx, userID, input.ID); err != nil {
		return nil, apiError(err)
	}
	return nil, nil
}
