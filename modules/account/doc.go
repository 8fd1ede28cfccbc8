// Package account exposes the auth service and the credential validators as
// a JSON API mounted on a chi router.
//
//	POST /auth/signup              {email, password, confirm_password, name}
//	POST /auth/login               {email, password}
//	POST /auth/password/reset      {email}
//	POST /auth/password/confirm    {code, password, confirm_password}
//	POST /auth/email/verify        {code}
//	POST /auth/signout             {user_id}
//	GET  /auth/{provider}/start    302 to the provider consent page
//	GET  /auth/{provider}/callback ?code=&state=&error=
//	POST /validate/password        {password}
//	POST /validate/national-id     {national_id}
//	POST /validate/email           {email}
//
// Every response uses the handler.JSONResponse envelope. Warnings from
// degraded best-effort steps are returned in meta.warnings.
package account
