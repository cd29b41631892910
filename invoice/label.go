// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package invoice

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bitmark-inc/lnpayd/fault"
)

// LabelMode - how the human label is built
type LabelMode string

// label modes
const (
	LabelBrand               LabelMode = "brand"
	LabelBrandAndOrderNumber LabelMode = "brand_and_order_number"
)

// ParseLabelMode - convert a configuration string, empty gives LabelBrand
func ParseLabelMode(s string) (LabelMode, error) {
	switch LabelMode(s) {
	case "", LabelBrand:
		return LabelBrand, nil
	case LabelBrandAndOrderNumber:
		return LabelBrandAndOrderNumber, nil
	default:
		return "", fault.ErrInvalidLabelMode
	}
}

var printer = message.NewPrinter(language.English)

// Label - the label shown to the payer
//
// i.e. "Shop - Order #1,234"
func Label(brand string, orderNumber uint64, mode LabelMode) string {
	if LabelBrandAndOrderNumber == mode {
		return printer.Sprintf("%s - Order #%d", brand, orderNumber)
	}
	return brand
}

// Description - the text placed in the invoice itself
func Description(label string, orderNumber uint64) string {
	return label + " #" + strconv.FormatUint(orderNumber, 10)
}
