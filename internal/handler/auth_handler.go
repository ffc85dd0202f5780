package handler

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"event-polling-api/internal/auth"
	"event-polling-api/internal/model"
	"event-polling-api/internal/rpc"
	"event-polling-api/internal/storage"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 50
)

func (h *Handler) Register(ctx context.Context, req *rpc.RegisterRequest) (*rpc.AuthResponse, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || req.Password == "" || name == "" {
		return nil, status.Error(codes.InvalidArgument, "all fields required")
	}
	if len(req.Password) < auth.MinPasswordLen {
		return nil, status.Error(codes.InvalidArgument, "password too short")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	}
	if err := h.store.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// dup email, but don't reveal that
			return nil, status.Error(codes.AlreadyExists, "registration failed")
		}
		h.log.ErrorContext(ctx, "create user failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return h.issue(ctx, u)
}

func (h *Handler) Login(ctx context.Context, req *rpc.LoginRequest) (*rpc.AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password required")
	}

	u, err := h.store.UserByEmail(ctx, req.Email)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, status.Error(codes.Unauthenticated, "invalid credentials")
	}

	return h.issue(ctx, u)
}

// Refresh trades a refresh token for a new pair. Presenting a token that was
// already rotated revokes every token of its owner.
func (h *Handler) Refresh(ctx context.Context, req *rpc.RefreshRequest) (*rpc.AuthResponse, error) {
	if req.RefreshToken == "" {
		return nil, status.Error(codes.InvalidArgument, "refresh token required")
	}
	old, err := h.store.GetRefreshTokenByHash(ctx, auth.HashRefreshToken(req.RefreshToken))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if old.Revoked {
		h.log.WarnContext(ctx, "refresh token reuse", "user_id", old.UserID)
		if err := h.store.RevokeAllRefreshTokens(ctx, old.UserID); err != nil {
			h.log.ErrorContext(ctx, "revoke refresh tokens failed", "error", err)
		}
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if !old.ExpiresAt.After(h.now()) {
		return nil, status.Error(codes.Unauthenticated, "refresh token expired")
	}

	u, err := h.store.UserByID(ctx, old.UserID)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}

	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	err = h.store.RotateRefreshToken(ctx, old.ID, uuid.New().String(), u.ID, hash, h.now().Add(auth.RefreshTTL))
	if errors.Is(err, storage.ErrNotFound) {
		// lost a race with another refresh of the same token
		return nil, status.Error(codes.Unauthenticated, "invalid refresh token")
	}
	if err != nil {
		h.log.ErrorContext(ctx, "rotate refresh token failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}

	access, err := auth.IssueAccessToken(u.ID, h.secret, h.now())
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.AuthResponse{UserId: u.ID, Name: u.Name, AccessToken: access, RefreshToken: raw}, nil
}

func (h *Handler) Logout(ctx context.Context, _ *rpc.Empty) (*rpc.Empty, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	if err := h.store.RevokeAllRefreshTokens(ctx, who.UserID); err != nil {
		h.log.ErrorContext(ctx, "revoke refresh tokens failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.Empty{}, nil
}

func (h *Handler) Me(ctx context.Context, _ *rpc.Empty) (*rpc.Profile, error) {
	who, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	p, err := h.store.ResolveUser(ctx, who.UserID)
	if err != nil {
		return nil, status.Error(codes.NotFound, "user not found")
	}
	return toProfile(p), nil
}

func (h *Handler) SearchUsers(ctx context.Context, req *rpc.SearchUsersRequest) (*rpc.SearchUsersResponse, error) {
	if _, err := identity(ctx); err != nil {
		return nil, err
	}
	limit := int(req.Limit)
	switch {
	case limit <= 0:
		limit = defaultSearchLimit
	case limit > maxSearchLimit:
		limit = maxSearchLimit
	}
	users, err := h.store.FindUsers(ctx, req.Query, limit)
	if err != nil {
		h.log.ErrorContext(ctx, "find users failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	resp := &rpc.SearchUsersResponse{Users: make([]*rpc.Profile, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, toProfile(u))
	}
	return resp, nil
}

func (h *Handler) issue(ctx context.Context, u *model.User) (*rpc.AuthResponse, error) {
	now := h.now()
	access, err := auth.IssueAccessToken(u.ID, h.secret, now)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	raw, hash, err := auth.NewRefreshToken()
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	if _, err := h.store.CreateRefreshToken(ctx, u.ID, hash, now.Add(auth.RefreshTTL)); err != nil {
		h.log.ErrorContext(ctx, "store refresh token failed", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return &rpc.AuthResponse{UserId: u.ID, Name: u.Name, AccessToken: access, RefreshToken: raw}, nil
}
