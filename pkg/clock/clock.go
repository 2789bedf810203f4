package clock

import (
	"fmt"
	"time"
)

type IClock interface {
	Time() string
	Date() string
	Greeting(user, bot string) string
}

type clock struct {
	now func() time.Time
}

func New() IClock {
	return &clock{now: time.Now}
}

// NewAt returns a clock that reads the time from now.
func NewAt(now func() time.Time) IClock {
	return &clock{now: now}
}

func (c *clock) Time() string {
	return "The current time is " + c.now().Format("03:04 PM")
}

func (c *clock) Date() string {
	return "Today is " + c.now().Format("Monday, January 02, 2006")
}

// Greeting is the time-of-day salutation said when a session starts.
func (c *clock) Greeting(user, bot string) string {
	var salutation string
	switch hour := c.now().Hour(); {
	case hour >= 6 && hour < 12:
		salutation = "Good Morning " + user
	case hour >= 12 && hour < 16:
		salutation = "Good Afternoon " + user
	case hour >= 16 && hour < 23:
		salutation = "Good Evening " + user
	default:
		salutation = "It's late, " + user + ". You should be sleeping"
	}
	return fmt.Sprintf("%s. I am %s. How may I assist you?", salutation, bot)
}
