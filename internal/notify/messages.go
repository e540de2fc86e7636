package notify

import (
    "fmt"

    "github.com/iliyamo/property-booking/internal/model"
)

const (
    dateLayout = "2006-01-02"
    signature  = "\n\nBest regards,\nProperty Booking Team"
)

func Welcome(u model.User) Email {
    return Email{
        Kind:    KindWelcome,
        To:      u.Email,
        Name:    u.Name,
        Subject: "Welcome to Property Booking!",
        Body: fmt.Sprintf("Hi %s,\n\nYour account has been created. You can now browse and book properties.",
            u.Name) + signature,
    }
}

func BookingConfirmed(u model.User, b model.Booking) Email {
    return Email{
        Kind:    KindBookingConfirmed,
        To:      u.Email,
        Name:    u.Name,
        Subject: "Booking Confirmed - " + b.PropertyName,
        Body: fmt.Sprintf("Hi %s,\n\nYour booking is confirmed.\n\nBooking ID: %s\nProperty: %s\n"+
            "Check-in: %s\nCheck-out: %s\nNights: %d\nTotal: $%.2f",
            u.Name, b.ID, b.PropertyName, b.CheckIn.Format(dateLayout), b.CheckOut.Format(dateLayout),
            b.Nights, b.TotalPrice) + signature,
    }
}

func BookingCancelled(u model.User, b model.Booking) Email {
    return Email{
        Kind:    KindBookingCancelled,
        To:      u.Email,
        Name:    u.Name,
        Subject: "Booking Cancelled",
        Body: fmt.Sprintf("Hi %s,\n\nYour booking has been cancelled.\n\nBooking ID: %s\nProperty: %s",
            u.Name, b.ID, b.PropertyName) + signature,
    }
}

func CheckInReminder(u model.User, b model.Booking) Email {
    return Email{
        Kind:    KindCheckInReminder,
        To:      u.Email,
        Name:    u.Name,
        Subject: "Your stay starts tomorrow",
        Body: fmt.Sprintf("Hi %s,\n\nA reminder that your stay at %s starts on %s (booking %s).",
            u.Name, b.PropertyName, b.CheckIn.Format(dateLayout), b.ID) + signature,
    }
}

func PaymentReceipt(u model.User, b model.Booking, p model.Payment) Email {
    return Email{
        Kind:    KindPaymentReceipt,
        To:      u.Email,
        Name:    u.Name,
        Subject: "Payment Received",
        Body: fmt.Sprintf("Hi %s,\n\nWe received your payment of %.2f %s for booking %s (%s).\n"+
            "Transaction: %s\nCard: **** %s",
            u.Name, p.Amount, p.Currency, b.ID, b.PropertyName, p.ID, p.CardLast4) + signature,
    }
}
