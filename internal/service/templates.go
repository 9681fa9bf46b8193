package service

import (
	"fmt"
	"math"
	"time"

	"AttendBot/config"
)

// 出站文案目录。所有函数都是纯函数，不触达台账和传输层。

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)

func WelcomeText(name string) string {
	return fmt.Sprintf(`🎉 *Welcome to %s, %s!*

Your WhatsApp attendance bot is now active.

📱 *Quick Commands:*
• checkin - Mark your daily attendance
• checkout - End your work day
• status - Check your current status
• help - Show all available commands

💡 *Pro Tip:* You can also apply for leave directly through WhatsApp!

Example: leave 2025-07-20 to 2025-07-22 vacation

Have a great day at work! 💪`, config.Cfg.CompanyName, name)
}

func DailyReminderText(name string) string {
	return fmt.Sprintf(`🌅 *Good Morning, %s!*

⏰ Friendly reminder to mark your attendance for today.

Simply reply with "checkin" to mark your attendance.

Have a productive day ahead! 😊`, name)
}

func CheckoutReminderText(name string) string {
	return fmt.Sprintf(`🌆 *End of Day Reminder*

Hi %s! Don't forget to check out for today.

Reply with "checkout" to mark your check-out time.

Thanks for your hard work today! 💪`, name)
}

func LeaveApprovedText(name string, from, to time.Time, approver, comments string) string {
	text := fmt.Sprintf(`✅ *Leave Request APPROVED*

Hi %s!

📅 *Leave Details:*
• From: %s
• To: %s
• Approved by: %s`, name, from.Format(dateLayout), to.Format(dateLayout), approver)

	if comments != "" {
		text += "\n💬 Comments: " + comments
	}

	return text + `

🎉 Enjoy your time off! Have a great break.

Please ensure proper handover before your leave starts.`
}

func LeaveRejectedText(name string, from, to time.Time, approver, comments string) string {
	text := fmt.Sprintf(`❌ *Leave Request REJECTED*

Hi %s,

📅 *Leave Details:*
• From: %s
• To: %s
• Rejected by: %s`, name, from.Format(dateLayout), to.Format(dateLayout), approver)

	if comments != "" {
		text += "\n📝 Reason: " + comments
	}

	return text + `

Please contact your manager for more details or to discuss alternative dates.`
}

func WeeklySummaryText(name string, presentDays, totalDays int, totalHours float64) string {
	closing := "💪 Keep up the good work!"
	if presentDays == totalDays {
		closing = "🎉 Perfect attendance this week!"
	}

	return fmt.Sprintf(`📊 *Weekly Attendance Summary*

Hi %s!

📅 *This Week's Performance:*
• Days Present: %d/%d
• Total Hours: %.2f
• Attendance Rate: %d%%

%s

Have a great weekend! 🎉`, name, presentDays, totalDays, totalHours, percentage(presentDays, totalDays), closing)
}

func AdminDailySummaryText(date time.Time, totalEmployees, present, absent, late int) string {
	closing := "📋 Review absent employees if needed."
	if present == totalEmployees {
		closing = "🎉 100% attendance today!"
	}

	return fmt.Sprintf(`📊 *Daily Attendance Summary*

📅 *Date:* %s

👥 *Overview:*
• Total Employees: %d
• Present: %d
• Absent: %d
• Late Arrivals: %d

📈 *Attendance Rate:* %d%%

%s`, date.Format(dateLayout), totalEmployees, present, absent, late, percentage(present, totalEmployees), closing)
}

func AdminWeeklyReportText(from, to time.Time, totalEmployees, presentDays, possibleDays int, totalHours float64) string {
	return fmt.Sprintf(`📈 *Weekly Attendance Report*

📅 *Week:* %s to %s

👥 *Overview:*
• Total Employees: %d
• Attendance Days: %d/%d
• Total Hours Logged: %.2f

📊 *Weekly Attendance Rate:* %d%%`,
		from.Format(dateLayout), to.Format(dateLayout),
		totalEmployees, presentDays, possibleDays, totalHours,
		percentage(presentDays, possibleDays))
}

func MaintenanceText(start, end string) string {
	return fmt.Sprintf(`🔧 *System Maintenance Notice*

⚠️ *Scheduled Maintenance*
• Start: %s
• End: %s

During this time:
• WhatsApp bot will be temporarily unavailable
• Use the web portal for attendance marking
• Normal service will resume automatically

We apologize for any inconvenience. 🙏`, start, end)
}

func HolidayText(holidayName string, date time.Time) string {
	return fmt.Sprintf(`🎉 *Holiday Notification*

📅 *%s* - %s

🏖️ The office will be closed on this day.
No attendance marking required.

Enjoy your holiday! 🎊`, holidayName, date.Format(dateLayout))
}

func BirthdayText(name string) string {
	return fmt.Sprintf(`🎂 *Happy Birthday, %s!* 🎉

Wishing you a wonderful day filled with joy and happiness!

🎁 May this new year of your life bring you success, good health, and lots of memorable moments.

Enjoy your special day! 🥳

- Team %s`, name, config.Cfg.CompanyName)
}

func AnniversaryText(name string, years int) string {
	unit := "years"
	if years == 1 {
		unit = "year"
	}

	return fmt.Sprintf(`🎊 *Work Anniversary Celebration!*

Congratulations %s! 🎉

Today marks your %d %s with %s!

🏆 Thank you for your dedication, hard work, and valuable contributions to our team.

Here's to many more successful years together! 🥂

- Team %s`, name, years, unit, config.Cfg.CompanyName, config.Cfg.CompanyName)
}

func ErrorText() string {
	return fmt.Sprintf(`❌ *Oops! Something went wrong*

We're experiencing technical difficulties with the attendance bot.

🔧 *What you can do:*
• Try your command again in a few minutes
• Contact IT support if the issue persists

We apologize for the inconvenience and are working to fix this quickly.

🆘 Need help? Contact HR: %s`, config.Cfg.HREmail)
}

func HelpText() string {
	return fmt.Sprintf(`🤖 *%s Attendance Bot Help*

📋 *Available Commands:*

✅ "checkin" - Mark your daily attendance
❌ "checkout" - End your work day
📊 "status" - Check your current attendance status
📝 "leave YYYY-MM-DD to YYYY-MM-DD reason" - Apply for leave
❓ "help" - Show this help menu

📖 *Examples:*
• checkin
• checkout
• status
• leave 2025-07-20 to 2025-07-22 family vacation

🆘 *Need Help?*
Contact HR: %s

💡 *Tip:* Commands are not case-sensitive!`, config.Cfg.CompanyName, config.Cfg.HREmail)
}

func UnknownCommandText() string {
	return `❓ Command not recognized.

Type "help" to see available commands.

*Quick Commands:*
• checkin
• checkout
• status
• help`
}

func NotRegisteredText() string {
	return "❌ Phone number not registered. Please contact HR to register your number."
}

func CheckInSuccessText(name string, at time.Time, department string) string {
	return fmt.Sprintf(`✅ *Check-in Successful!*

👤 %s
🕐 Time: %s
📅 Date: %s
🏢 Department: %s

Have a productive day! 💪`, name, at.Format(timeLayout), at.Format(dateLayout), department)
}

func AlreadyCheckedInText(checkIn time.Time) string {
	return fmt.Sprintf(`⚠️ You have already checked in today at %s.

Use "checkout" to check out or "status" to see your current status.`, checkIn.Format(timeLayout))
}

func CheckOutSuccessText(name string, at time.Time, totalHours float64) string {
	return fmt.Sprintf(`✅ *Check-out Successful!*

👤 %s
🕐 Check-out: %s
⏱️ Total Hours: %.2f hours
📅 Date: %s

Great work today! 🎉`, name, at.Format(timeLayout), totalHours, at.Format(dateLayout))
}

func AlreadyCheckedOutText(checkOut time.Time, totalHours float64) string {
	return fmt.Sprintf(`⚠️ You have already checked out today at %s.

Total working hours: %.2f hours`, checkOut.Format(timeLayout), totalHours)
}

func CheckInFirstText() string {
	return `❌ No check-in record found for today. Please check in first using "checkin".`
}

func StatusNotCheckedInText(name string, date time.Time) string {
	return fmt.Sprintf(`📊 *Today's Status*

👤 %s
📅 %s
❌ Not checked in yet

Use "checkin" to mark your attendance.`, name, date.Format(dateLayout))
}

func StatusCheckedInText(name string, date, checkIn time.Time, elapsed string) string {
	return fmt.Sprintf(`📊 *Today's Status*

👤 %s
📅 %s
🟡 Currently checked in
🕐 In: %s
⏱️ Active since: %s`, name, date.Format(dateLayout), checkIn.Format(timeLayout), elapsed)
}

func StatusCompletedText(name string, date, checkIn, checkOut time.Time, totalHours float64) string {
	return fmt.Sprintf(`📊 *Today's Status*

👤 %s
📅 %s
✅ Completed for today
🕐 In: %s
🕐 Out: %s
⏱️ Hours: %.2f`, name, date.Format(dateLayout), checkIn.Format(timeLayout), checkOut.Format(timeLayout), totalHours)
}

func LeaveSubmittedText(name string, from, to time.Time, days int, reason string) string {
	return fmt.Sprintf(`📝 *Leave Request Submitted*

👤 %s
📅 From: %s
📅 To: %s
📊 Days: %d
📝 Reason: %s
⏳ Status: Pending Approval

Your leave request has been forwarded to your manager for approval.`,
		name, from.Format(dateLayout), to.Format(dateLayout), days, reason)
}

func LeaveFormatHelpText() string {
	return `📝 *Leave Request Format*

To apply for leave, use:
"leave YYYY-MM-DD to YYYY-MM-DD reason"

Example:
"leave 2025-07-20 to 2025-07-22 family vacation"

For single day:
"leave 2025-07-20 to 2025-07-20 medical appointment"`
}

func LeaveRangeInvalidText(from, to time.Time) string {
	return fmt.Sprintf(`❌ *Invalid Leave Dates*

The end date %s is before the start date %s.

Please resubmit with the start date first:
"leave YYYY-MM-DD to YYYY-MM-DD reason"`, to.Format(dateLayout), from.Format(dateLayout))
}

// percentage 四舍五入的百分比，分母为零时返回 0
func percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
