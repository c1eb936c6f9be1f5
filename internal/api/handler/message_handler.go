package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type MessageHandler struct {
	messages ports.MessageService
}

func NewMessageHandler(messages ports.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

// List returns every message the caller sent or received.
//
// @Summary      List messages
// @Tags         messages
// @Produce      json
// @Param        token  query     string  false  "Session token (or in the JSON body)"
// @Success      200    {object}  messageListResponse
// @Failure      401    {object}  msgResponse
// @Router       /api/v1/message [get]
func (h *MessageHandler) List(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	msgs, err := h.messages.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageListResponse{Success: true, Count: len(msgs), Messages: msgs})
}

// Send delivers a message from the caller.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      sendMessageRequest  true  "Message; carries the session token"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /api/v1/message [post]
func (h *MessageHandler) Send(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req sendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	msg, err := h.messages.Send(c.Request().Context(), actor, ports.SendMessageInput{
		Receiver: req.Receiver,
		Content:  req.Content,
		Type:     domain.MessageType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Success: true, Message: msg})
}

// Delete removes a message the caller took part in.
//
// @Summary      Delete a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      deleteMessageRequest  true  "Message id; carries the session token"
// @Success      200   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /api/v1/message [delete]
func (h *MessageHandler) Delete(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req deleteMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := h.messages.Delete(c.Request().Context(), actor, req.MessageID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "message deleted"})
}
