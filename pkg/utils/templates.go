package utils

// MessageDateLayout is the departure format shown in outbound messages
const MessageDateLayout = "02 Jan 15:04"

// ConfirmationTemplate greets a traveler after booking.
// Args: name, trip title, flight label, departure.
const ConfirmationTemplate = "✈️ Hi %s! Your trip *%s* (%s) departs %s. " +
	"We'll keep you posted on any changes. Have a great flight!"

// StatusChangeTemplate announces a flight status update.
// Args: name, trip title, flight label, new status, departure.
const StatusChangeTemplate = "✈️ Hi %s! Update on *%s* (%s): the flight is now *%s*. " +
	"Departure %s."
