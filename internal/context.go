package internal

import "context"

type ctxKey string

// ContextSubjectKey holds the credential id resolved from a verified bearer
// token.
const ContextSubjectKey ctxKey = "subjectID"

func SubjectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if subjectID, ok := ctx.Value(ContextSubjectKey).(string); ok {
		return subjectID
	}
	return ""
}

func ContextWithSubject(ctx context.Context, subjectID string) context.Context {
	return context.WithValue(ctx, ContextSubjectKey, subjectID)
}
