package hivelocity

import "fmt"

// ResponseNotObjectError reports a create response whose top level was not a
// JSON object.
type ResponseNotObjectError struct {
	Response any
}

func (e *ResponseNotObjectError) Error() string {
	return fmt.Sprintf("response not object: %v", e.Response)
}

// ResponseMissingDeviceIDError reports a create response object without a
// "deviceId" field. Object is the full response object for diagnosis.
type ResponseMissingDeviceIDError struct {
	Object map[string]any
}

func (e *ResponseMissingDeviceIDError) Error() string {
	return fmt.Sprintf("response missing device id: %v", e.Object)
}

// ResponseInvalidDeviceIDError reports a "deviceId" field whose JSON type is
// not a non-negative integer. DeviceID is the offending value.
type ResponseInvalidDeviceIDError struct {
	DeviceID any
}

func (e *ResponseInvalidDeviceIDError) Error() string {
	return fmt.Sprintf("response invalid device id: %v", e.DeviceID)
}
