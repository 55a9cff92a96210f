package provider

import (
	"errors"
	"fmt"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
)

// ErrModelNotConfigured 模型凭据缺失，调用时才报错，不影响启动
var ErrModelNotConfigured = errors.New("model not configured")

// VendorError 模型服务商返回的错误
// 控制器据此返回 "Google API error: <Message>"
type VendorError struct {
	Provider string
	Code     int
	Message  string
	Err      error
}

func (e *VendorError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("%s [%d]: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}

// AsVendorError 将 SDK 错误归类为 VendorError
// 无法识别的错误原样返回
func AsVendorError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var vendorErr *VendorError
	if errors.As(err, &vendorErr) {
		return err
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		msg := gErr.Message
		if msg == "" {
			msg = gErr.Error()
		}
		return &VendorError{Provider: provider, Code: gErr.Code, Message: msg, Err: err}
	}

	var apiErr *apierror.APIError
	if errors.As(err, &apiErr) {
		msg := apiErr.Error()
		if st := apiErr.GRPCStatus(); st != nil && st.Message() != "" {
			msg = st.Message()
		}
		return &VendorError{Provider: provider, Code: apiErr.HTTPCode(), Message: msg, Err: err}
	}

	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return newGenAIVendorError(provider, genaiErr, err)
	}
	var genaiErrPtr *genai.APIError
	if errors.As(err, &genaiErrPtr) && genaiErrPtr != nil {
		return newGenAIVendorError(provider, *genaiErrPtr, err)
	}

	var blocked *gemini.BlockedError
	if errors.As(err, &blocked) {
		return &VendorError{Provider: provider, Message: blocked.Error(), Err: err}
	}

	return err
}

func newGenAIVendorError(provider string, apiErr genai.APIError, cause error) *VendorError {
	msg := apiErr.Message
	if msg == "" {
		msg = apiErr.Status
	}
	return &VendorError{Provider: provider, Code: apiErr.Code, Message: msg, Err: cause}
}
