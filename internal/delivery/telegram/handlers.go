package telegram

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/telebot.v3"

	"staffbook/internal/app/service"
	"staffbook/internal/delivery/telegram/router"
	"staffbook/internal/domain"
)

const defaultTimeout = 5 * time.Second

type Handler struct {
	Bot       *telebot.Bot
	Employees *service.EmployeeService
	Async     *service.AsyncService
	Callbacks *router.CallbackRouter
	Log       zerolog.Logger
	Timeout   time.Duration
}

func (h *Handler) Register() {
	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/help", h.handleStart)
	h.Bot.Handle("/employees", h.handleEmployees)
	h.Bot.Handle("/employee", h.handleEmployee)
	h.Bot.Handle("/find", h.handleFind)
	h.Bot.Handle("/hire", h.handleHire)
	h.Bot.Handle("/retitle", h.handleRetitle)
	h.Bot.Handle("/transfer", h.handleTransfer)
	h.Bot.Handle("/fire", h.handleFire)

	h.Callbacks.Register("emp", h.onShowEmployee)
	h.Callbacks.Register("fire", h.onFireEmployee)
	h.Callbacks.Attach(h.Bot)
}

func (h *Handler) handleStart(c telebot.Context) error {
	return c.Send(helpText)
}

func (h *Handler) handleEmployees(c telebot.Context) error {
	employees, err := runAsync(h, c, "employees", func(ctx context.Context) ([]*domain.Employee, error) {
		return h.Employees.List(ctx)
	})
	if err != nil {
		return h.replyError(c, "employees", err)
	}
	if len(employees) == 0 {
		return c.Send(formatList(employees))
	}
	return c.Send(formatList(employees), listMarkup(employees))
}

func (h *Handler) handleEmployee(c telebot.Context) error {
	id, err := parseIDArg(c.Message().Payload, usageEmployee)
	if err != nil {
		return h.replyError(c, "employee", err)
	}
	e, err := runAsync(h, c, "employee", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.Get(ctx, id)
	})
	if err != nil {
		return h.replyError(c, "employee", err)
	}
	return c.Send(formatEmployee(e), cardMarkup(e))
}

func (h *Handler) handleFind(c telebot.Context) error {
	name := c.Message().Payload
	if name == "" {
		return h.replyError(c, "find", usageError{usageFind})
	}
	e, err := runAsync(h, c, "find", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.FindByName(ctx, name)
	})
	if err != nil {
		return h.replyError(c, "find", err)
	}
	return c.Send(formatEmployee(e), cardMarkup(e))
}

func (h *Handler) handleHire(c telebot.Context) error {
	in, err := parseHire(c.Message().Payload)
	if err != nil {
		return h.replyError(c, "hire", err)
	}
	e, err := runAsync(h, c, "hire", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.Hire(ctx, in)
	})
	if err != nil {
		return h.replyError(c, "hire", err)
	}
	return c.Send("Hired:\n" + formatEmployee(e))
}

func (h *Handler) handleRetitle(c telebot.Context) error {
	id, title, err := parseRetitle(c.Message().Payload)
	if err != nil {
		return h.replyError(c, "retitle", err)
	}
	e, err := runAsync(h, c, "retitle", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.Retitle(ctx, id, title)
	})
	if err != nil {
		return h.replyError(c, "retitle", err)
	}
	return c.Send("Updated:\n" + formatEmployee(e))
}

func (h *Handler) handleTransfer(c telebot.Context) error {
	id, dept, err := parseTransfer(c.Message().Payload)
	if err != nil {
		return h.replyError(c, "transfer", err)
	}
	e, err := runAsync(h, c, "transfer", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.Transfer(ctx, id, dept)
	})
	if err != nil {
		return h.replyError(c, "transfer", err)
	}
	return c.Send("Updated:\n" + formatEmployee(e))
}

func (h *Handler) handleFire(c telebot.Context) error {
	id, err := parseIDArg(c.Message().Payload, usageFire)
	if err != nil {
		return h.replyError(c, "fire", err)
	}
	e, err := h.dismiss(c, id)
	if err != nil {
		return h.replyError(c, "fire", err)
	}
	return c.Send("Dismissed " + e.Name + ".")
}

func (h *Handler) onShowEmployee(c telebot.Context, payload string) error {
	id, err := parseIDArg(payload, usageEmployee)
	if err != nil {
		return h.replyError(c, "emp", err)
	}
	e, err := runAsync(h, c, "emp", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.Get(ctx, id)
	})
	if err != nil {
		return h.replyError(c, "emp", err)
	}
	return editOrSend(c, formatEmployee(e), cardMarkup(e))
}

func (h *Handler) onFireEmployee(c telebot.Context, payload string) error {
	id, err := parseIDArg(payload, usageFire)
	if err != nil {
		return h.replyError(c, "fire", err)
	}
	e, err := h.dismiss(c, id)
	if err != nil {
		return h.replyError(c, "fire", err)
	}
	return editOrSend(c, "Dismissed "+e.Name+".", nil)
}

func (h *Handler) dismiss(c telebot.Context, id int64) (*domain.Employee, error) {
	return runAsync(h, c, "fire", func(ctx context.Context) (*domain.Employee, error) {
		return h.Employees.Dismiss(ctx, id)
	})
}

// runAsync executes fn on the worker pool under the handler timeout.
func runAsync[T any](h *Handler, c telebot.Context, command string, fn func(ctx context.Context) (T, error)) (T, error) {
	timeout := h.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	h.Log.Debug().Int64("chat_id", chatID(c)).Str("command", command).Msg("command")
	return service.Do(ctx, h.Async, func() (T, error) {
		return fn(ctx)
	})
}

func (h *Handler) replyError(c telebot.Context, command string, err error) error {
	h.Log.Warn().Err(err).Int64("chat_id", chatID(c)).Str("command", command).Msg("command failed")
	return c.Send(userMessage(err))
}

func cardMarkup(e *domain.Employee) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("Fire", "fire", idString(e.ID))))
	return markup
}

// listMarkup builds one button per listed employee, up to maxListed.
func listMarkup(employees []*domain.Employee) *telebot.ReplyMarkup {
	if len(employees) > maxListed {
		employees = employees[:maxListed]
	}
	markup := &telebot.ReplyMarkup{}
	rows := make([]telebot.Row, 0, len(employees))
	for _, e := range employees {
		rows = append(rows, markup.Row(markup.Data(buttonLabel(e), "emp", idString(e.ID))))
	}
	markup.Inline(rows...)
	return markup
}

// buttonLabel is never empty; Telegram rejects buttons without text.
func buttonLabel(e *domain.Employee) string {
	if e.Name == "" {
		return "#" + idString(e.ID)
	}
	return e.Name
}

func editOrSend(c telebot.Context, text string, markup *telebot.ReplyMarkup) error {
	if markup == nil {
		if err := c.Edit(text); err != nil {
			return c.Send(text)
		}
		return nil
	}
	if err := c.Edit(text, markup); err != nil {
		return c.Send(text, markup)
	}
	return nil
}

func chatID(c telebot.Context) int64 {
	if chat := c.Chat(); chat != nil {
		return chat.ID
	}
	return 0
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
