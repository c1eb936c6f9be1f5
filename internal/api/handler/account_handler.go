package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RegisterMember creates a member account.
//
// @Summary      Register a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Member details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  msgResponse
// @Failure      409   {object}  msgResponse
// @Router       /api/v1/member [post]
func (h *AccountHandler) RegisterMember(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cred, err := h.accounts.Register(c.Request().Context(), req.toInput(domain.RoleMember))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Msg: "member created", ID: cred.ID})
}

// CreateAgency creates an agency account. Admin only.
//
// @Summary      Create an agency
// @Tags         agencies
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      registerRequest  true  "Agency details"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      409   {object}  msgResponse
// @Router       /api/v1/agency [post]
func (h *AccountHandler) CreateAgency(c echo.Context) error {
	return h.create(c, func(registerRequest) domain.Role { return domain.RoleAgency }, "agency created")
}

// AdminCreate creates an account of any role. Admin only.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      registerRequest  true  "User details"
// @Success      201   {object}  createdResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      409   {object}  msgResponse
// @Router       /admin/users [post]
func (h *AccountHandler) AdminCreate(c echo.Context) error {
	return h.create(c, func(r registerRequest) domain.Role {
		if r.Role == nil {
			return domain.RoleMember
		}
		return domain.Role(*r.Role)
	}, "user created")
}

func (h *AccountHandler) create(c echo.Context, role func(registerRequest) domain.Role, msg string) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	cred, err := h.accounts.Create(c.Request().Context(), actor, req.toInput(role(req)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{Msg: msg, ID: cred.ID})
}

// AdminList returns every account. Admin only.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BasicAuth
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  msgResponse
// @Failure      403  {object}  msgResponse
// @Router       /admin/users [get]
func (h *AccountHandler) AdminList(c echo.Context) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	users, err := h.accounts.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Success: true, Count: len(users), Users: users})
}

// PublicList returns the public view of every account.
//
// @Summary      List users (public)
// @Tags         users
// @Produce      json
// @Success      200  {object}  userListResponse
// @Router       /api/v1/user [get]
func (h *AccountHandler) PublicList(c echo.Context) error {
	users, err := h.accounts.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Success: true, Count: len(users), Users: users})
}

// UpdateSelf returns a handler updating the account named in the body (or the
// caller when omitted), restricted to accounts of scope.
//
// @Summary      Update a member or agency
// @Tags         members,agencies
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  msgResponse
// @Failure      400   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /api/v1/member [put]
// @Router       /api/v1/agency [put]
func (h *AccountHandler) UpdateSelf(scope domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req updateUserRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		return h.update(c, req.Username, &scope, req)
	}
}

// AdminUpdate updates the account named in the path.
//
// @Summary      Update a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        username  path      string             true  "Username"
// @Param        body      body      updateUserRequest  true  "Fields to change"
// @Success      200       {object}  msgResponse
// @Failure      400       {object}  msgResponse
// @Failure      403       {object}  msgResponse
// @Failure      404       {object}  msgResponse
// @Router       /admin/users/{username} [put]
func (h *AccountHandler) AdminUpdate(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	return h.update(c, c.Param("username"), nil, req)
}

func (h *AccountHandler) update(c echo.Context, target string, scope *domain.Role, req updateUserRequest) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	if target == "" {
		target = actor.Identity
	}
	if err := h.accounts.Update(c.Request().Context(), actor, target, scope, req.toInput()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "user updated"})
}

// DeleteSelf returns a handler deleting the account named in the body (or
// the caller when omitted), restricted to accounts of scope.
//
// @Summary      Delete a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      deleteUserRequest  false  "Account to delete"
// @Success      200   {object}  msgResponse
// @Failure      401   {object}  msgResponse
// @Failure      403   {object}  msgResponse
// @Failure      404   {object}  msgResponse
// @Router       /api/v1/member [delete]
func (h *AccountHandler) DeleteSelf(scope domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req deleteUserRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		return h.delete(c, req.Username, &scope)
	}
}

// AdminDelete deletes the account named in the path. Admin accounts are
// protected.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BasicAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  msgResponse
// @Failure      403       {object}  msgResponse
// @Failure      404       {object}  msgResponse
// @Router       /admin/users/{username} [delete]
func (h *AccountHandler) AdminDelete(c echo.Context) error {
	return h.delete(c, c.Param("username"), nil)
}

func (h *AccountHandler) delete(c echo.Context, target string, scope *domain.Role) error {
	actor, err := principal(c)
	if err != nil {
		return err
	}
	if target == "" {
		target = actor.Identity
	}
	if err := h.accounts.Delete(c.Request().Context(), actor, target, scope); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, msgResponse{Msg: "user deleted"})
}
