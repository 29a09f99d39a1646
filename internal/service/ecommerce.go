// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import "strings"

// DefaultBasketPath is the ecommerce path that adds a SKU to the basket.
const DefaultBasketPath = "/basket/add/"

// EcommerceService builds URLs into the ecommerce service.
type EcommerceService struct {
	baseURL    string
	basketPath string
}

// NewEcommerceService creates an EcommerceService. An empty baseURL yields
// host-relative URLs.
func NewEcommerceService(baseURL, basketPath string) *EcommerceService {
	if basketPath == "" {
		basketPath = DefaultBasketPath
	}
	if !strings.HasPrefix(basketPath, "/") {
		basketPath = "/" + basketPath
	}
	return &EcommerceService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		basketPath: basketPath,
	}
}

// PaymentPageURL returns the page a learner is sent to for checkout.
func (s *EcommerceService) PaymentPageURL() string {
	return s.baseURL + s.basketPath
}
