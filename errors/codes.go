package errors

import "strconv"

// ErrorCode identifies an application error independently of its HTTP status
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED       ErrorCode = 0
	ErrorCode_HTTP_OK           ErrorCode = 200
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_UNAUTHENTICATED   ErrorCode = 1005
	ErrorCode_FORBIDDEN         ErrorCode = 1006
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1007
	ErrorCode_PROCESSING_FAILED ErrorCode = 1008

	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = 2000
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = 2001

	ErrorCode_MEETING_NOT_FOUND         ErrorCode = 3000
	ErrorCode_MEETING_BUSY              ErrorCode = 3001
	ErrorCode_AUDIO_NOT_FOUND           ErrorCode = 3002
	ErrorCode_AUDIO_UNSUPPORTED_FORMAT  ErrorCode = 3003
	ErrorCode_AUDIO_TOO_LARGE           ErrorCode = 3004
	ErrorCode_EXPORT_UNSUPPORTED_FORMAT ErrorCode = 3005
	ErrorCode_EXPORT_FAILED             ErrorCode = 3006

	ErrorCode_AI_TRANSCRIPTION_FAILED     ErrorCode = 4000
	ErrorCode_AI_SUMMARY_FAILED           ErrorCode = 4001
	ErrorCode_AI_STRUCTURAL_VALIDATION    ErrorCode = 4002
	ErrorCode_AI_SERVICE_UNAVAILABLE      ErrorCode = 4003
	ErrorCode_AI_QUOTA_EXCEEDED           ErrorCode = 4004
	ErrorCode_INTEGRATION_STORAGE_FAILED  ErrorCode = 5000
	ErrorCode_INTEGRATION_CACHE_FAILED    ErrorCode = 5001
	ErrorCode_INTEGRATION_EXTERNAL_FAILED ErrorCode = 5002

	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 6000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 6001
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                 "UNSPECIFIED",
	ErrorCode_HTTP_OK:                     "HTTP_OK",
	ErrorCode_INTERNAL:                    "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:            "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                   "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:              "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:           "PERMISSION_DENIED",
	ErrorCode_UNAUTHENTICATED:             "UNAUTHENTICATED",
	ErrorCode_FORBIDDEN:                   "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:             "INVALID_PAYLOAD",
	ErrorCode_PROCESSING_FAILED:           "PROCESSING_FAILED",
	ErrorCode_AUTH_INVALID_TOKEN:          "AUTH_INVALID_TOKEN",
	ErrorCode_AUTH_TOKEN_EXPIRED:          "AUTH_TOKEN_EXPIRED",
	ErrorCode_MEETING_NOT_FOUND:           "MEETING_NOT_FOUND",
	ErrorCode_MEETING_BUSY:                "MEETING_BUSY",
	ErrorCode_AUDIO_NOT_FOUND:             "AUDIO_NOT_FOUND",
	ErrorCode_AUDIO_UNSUPPORTED_FORMAT:    "AUDIO_UNSUPPORTED_FORMAT",
	ErrorCode_AUDIO_TOO_LARGE:             "AUDIO_TOO_LARGE",
	ErrorCode_EXPORT_UNSUPPORTED_FORMAT:   "EXPORT_UNSUPPORTED_FORMAT",
	ErrorCode_EXPORT_FAILED:               "EXPORT_FAILED",
	ErrorCode_AI_TRANSCRIPTION_FAILED:     "AI_TRANSCRIPTION_FAILED",
	ErrorCode_AI_SUMMARY_FAILED:           "AI_SUMMARY_FAILED",
	ErrorCode_AI_STRUCTURAL_VALIDATION:    "AI_STRUCTURAL_VALIDATION",
	ErrorCode_AI_SERVICE_UNAVAILABLE:      "AI_SERVICE_UNAVAILABLE",
	ErrorCode_AI_QUOTA_EXCEEDED:           "AI_QUOTA_EXCEEDED",
	ErrorCode_INTEGRATION_STORAGE_FAILED:  "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:    "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_FAILED: "INTEGRATION_EXTERNAL_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:        "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:             "DB_QUERY_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "ErrorCode(" + strconv.Itoa(int(c)) + ")"
}
