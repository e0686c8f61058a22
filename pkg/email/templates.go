package email

import "html/template"

// Both templates share the same table-based layout so they render
// consistently in mail clients that ignore stylesheets.

var shopWelcomeTemplate = template.Must(template.New("shop_welcome").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Welcome to {{.AppName}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f2f5f8;">
  <table role="presentation" style="width: 100%; border-collapse: collapse;">
    <tr>
      <td style="padding: 32px 0;">
        <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 10px; overflow: hidden; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.08);">
          <tr>
            <td style="background-color: #0f766e; padding: 32px; text-align: center;">
              <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.AppName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <h2 style="color: #111827; margin: 0 0 16px 0; font-size: 22px;">Your shop is ready</h2>
              <p style="color: #374151; font-size: 15px; line-height: 1.6; margin: 0 0 16px 0;">Hello {{.FirstName}},</p>
              <p style="color: #374151; font-size: 15px; line-height: 1.6; margin: 0 0 16px 0;">
                An account has been created for <strong>{{.ShopName}}</strong>. Use the credentials
                below to sign in, then change your password from your profile.
              </p>
              <table role="presentation" style="width: 100%; background-color: #f0fdfa; border-radius: 8px; margin: 0 0 24px 0;">
                <tr>
                  <td style="padding: 16px 24px;">
                    <p style="color: #374151; font-size: 14px; margin: 0 0 6px 0;">Email: <strong>{{.Email}}</strong></p>
                    <p style="color: #374151; font-size: 14px; margin: 0;">Temporary password: <strong>{{.TempPassword}}</strong></p>
                  </td>
                </tr>
              </table>
              <table role="presentation" style="margin: 0 auto 24px auto;">
                <tr>
                  <td style="background-color: #0f766e; border-radius: 8px;">
                    <a href="{{.LoginURL}}" style="display: inline-block; padding: 14px 28px; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600;">Sign In</a>
                  </td>
                </tr>
              </table>
              <p style="color: #6b7280; font-size: 13px; line-height: 1.6; margin: 0;">
                If you weren't expecting this email, please contact your administrator.
              </p>
            </td>
          </tr>
          <tr>
            <td style="background-color: #f9fafb; padding: 24px; text-align: center; border-top: 1px solid #e5e7eb;">
              <p style="color: #9ca3af; font-size: 13px; margin: 0;">This email was sent by {{.AppName}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Reset Your Password</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f2f5f8;">
  <table role="presentation" style="width: 100%; border-collapse: collapse;">
    <tr>
      <td style="padding: 32px 0;">
        <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 10px; overflow: hidden; box-shadow: 0 2px 8px rgba(0, 0, 0, 0.08);">
          <tr>
            <td style="background-color: #0f766e; padding: 32px; text-align: center;">
              <h1 style="color: #ffffff; margin: 0; font-size: 26px; font-weight: 600;">{{.AppName}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 32px;">
              <h2 style="color: #111827; margin: 0 0 16px 0; font-size: 22px;">Reset your password</h2>
              <p style="color: #374151; font-size: 15px; line-height: 1.6; margin: 0 0 16px 0;">
                We received a request to reset the password for the account associated
                with <strong>{{.Email}}</strong>.
              </p>
              <p style="color: #374151; font-size: 15px; line-height: 1.6; margin: 0 0 24px 0;">
                Click the button below to choose a new password. The link expires in
                <strong>1 hour</strong>.
              </p>
              <table role="presentation" style="margin: 0 auto 24px auto;">
                <tr>
                  <td style="background-color: #0f766e; border-radius: 8px;">
                    <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 28px; color: #ffffff; text-decoration: none; font-size: 15px; font-weight: 600;">Reset Password</a>
                  </td>
                </tr>
              </table>
              <p style="color: #6b7280; font-size: 13px; line-height: 1.6; margin: 0 0 16px 0;">
                If you didn't request this reset you can ignore this email; your
                password stays unchanged.
              </p>
              <p style="color: #6b7280; font-size: 13px; line-height: 1.6; margin: 0;">
                If the button doesn't work, copy this link into your browser:
              </p>
              <p style="color: #0f766e; font-size: 13px; line-height: 1.6; margin: 8px 0 0 0; word-break: break-all;">
                <a href="{{.ResetURL}}" style="color: #0f766e;">{{.ResetURL}}</a>
              </p>
            </td>
          </tr>
          <tr>
            <td style="background-color: #f9fafb; padding: 24px; text-align: center; border-top: 1px solid #e5e7eb;">
              <p style="color: #9ca3af; font-size: 13px; margin: 0;">This email was sent by {{.AppName}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
`))
