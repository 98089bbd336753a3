/* YaNFD - Yet another NDN Forwarding Daemon
 *
 * Copyright (C) 2020-2021 Eric Newberry.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package mgmt

import "github.com/named-data/inrpp/ndn"

// Content Store flag bits carried in ControlParameters.Flags and ControlParameters.Mask.
const (
	CsEnableAdmit uint64 = 0x01
	CsEnableServe uint64 = 0x02
)

// ControlParameters carries the arguments of a control command. Absent fields are nil.
type ControlParameters struct {
	Name     *ndn.Name
	FaceID   *uint64
	Cost     *uint64
	Capacity *uint64
	Flags    *uint64
	Mask     *uint64
}

// ControlResponse is the result of a control command. Body holds the response parameters or dataset, if any.
type ControlResponse struct {
	StatusCode uint64
	StatusText string
	Body       interface{}
}

func makeControlResponse(statusCode uint64, statusText string, body interface{}) *ControlResponse {
	return &ControlResponse{StatusCode: statusCode, StatusText: statusText, Body: body}
}

// OK returns whether the command succeeded.
func (r *ControlResponse) OK() bool {
	return r.StatusCode == 200
}
