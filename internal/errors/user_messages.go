package errors

// User-friendly error messages
const (
	MsgAuthRequired       = "Please sign in to continue."
	MsgNotReviewOwner     = "You can only delete your own reviews."
	MsgRatingRequired     = "Please select a star rating."
	MsgReviewTextRequired = "Please write your review before submitting."
	MsgPropertyNotFound   = "Listing not found. It may have been sold or removed."
	MsgReviewNotFound     = "Review not found. It may have already been deleted."
	MsgServiceUnavailable = "We're unable to reach the listing service right now. Please try again in a few minutes."
	MsgRelayFailed        = "We couldn't send your request right now. Please try again later."
	MsgRateLimited        = "You're going too fast! Please wait a moment and try again."
	MsgInvalidParameters  = "The provided parameters are invalid. Please check your input and try again."
	MsgInternalError      = "Something went wrong on our end. Please try again later."
)
