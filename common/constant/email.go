package constant

const EmailDepositReceiptTemplate = `
Dear %s,

Your wallet deposit has been processed successfully.

Deposit Details:
------------------------------------------
Deposit ID: %s
Amount: %s
Amount in words: %s
------------------------------------------

The amount has been credited to your clinic wallet and is available for
booking services immediately.

If you did not initiate this deposit, please contact our support team at
support@clinic-booking.com.

Best regards,
Clinic Booking Team

Note: This is an automated message, please do not reply to this email.
`
