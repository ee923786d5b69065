// Package services contains server-side business logic. This file implements
// AccessService, which decides whether an email is granted a one-time signed
// URL to the protected video and enforces single-issuance semantics.
package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/xrcouture/VideostreamBackend/internal/common"
	"github.com/xrcouture/VideostreamBackend/internal/server/repositories/repomanager"
)

const (
	// VideoObjectKey and VideoBucket identify the single protected resource
	// this service issues links for.
	VideoObjectKey = "userDashboard/img_1978.m3u8"
	VideoBucket    = "xrcouture-restricted"

	// LinkValidity bounds how long an issued URL stays retrievable.
	LinkValidity = 30 * time.Minute

	tokenBytes = 20
)

// AccessService grants at most one signed video URL per registered email.
type AccessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	signer      URLSigner
}

func NewAccessService(db *sql.DB, m repomanager.RepositoryManager, signer URLSigner) *AccessService {
	return &AccessService{
		db:          db,
		repomanager: m,
		signer:      signer,
	}
}

// Issue grants a one-time signed URL for the given email.
//
// Preconditions, checked in order: the email is non-empty, a record for it
// exists, and no token has been issued yet. The token assignment is a single
// conditional update, so of N concurrent requests for the same email exactly
// one wins; the rest get common.ErrorAlreadyIssued. The URL is signed only
// after the claim succeeds, keeping rejected requests off the signing
// service entirely.
func (s *AccessService) Issue(ctx context.Context, email string) (string, error) {
	if email == "" {
		return "", common.ErrorValidation
	}

	repo := s.repomanager.Links(s.db)

	link, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error searching link: %w", err)
	}

	if link.Issued() {
		return "", common.ErrorAlreadyIssued
	}

	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("error generating token: %w", err)
	}

	claimed, err := repo.ClaimToken(ctx, email, token)
	if err != nil {
		return "", fmt.Errorf("error claiming token: %w", err)
	}
	if !claimed {
		// Lost the race to a concurrent request for the same email.
		return "", common.ErrorAlreadyIssued
	}

	url, err := s.signer.SignedGetURL(ctx, VideoObjectKey, LinkValidity)
	if err != nil {
		return "", fmt.Errorf("error signing url: %w", err)
	}

	return url, nil
}

// generateToken returns 20 bytes of cryptographic randomness, hex-encoded.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
