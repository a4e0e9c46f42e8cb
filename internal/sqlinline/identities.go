package sqlinline

const QIdentityExists = `--sql 58f8c1e0-804b-414e-a716-928093485023
select exists (
    select 1 from identities where identifier = $1::text
);
`

const QInsertIdentity = `--sql 458cb6b4-fac5-4efd-9a60-66e825142eb7
insert into identities (uid, identifier, password_hash, created_at)
values ($1::text, $2::text, $3::text, $4::timestamptz);
`

const QSelectIdentityByIdentifier = `--sql dbf2b957-6728-4b68-94c5-3ef1df3eba86
select uid, identifier, password_hash, created_at, last_login_at
from identities
where identifier = $1::text
limit 1;
`

const QTouchIdentityLogin = `--sql 62f3c898-9353-46ba-a660-12f972898aa0
update identities set last_login_at = $2::timestamptz
where uid = $1::text;
`
