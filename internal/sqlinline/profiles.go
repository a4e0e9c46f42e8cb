package sqlinline

// QUpsertProfile overwrites the whole profile document for a uid.
const QUpsertProfile = `--sql a2d42292-a741-4f7c-b074-085cdf445149
insert into profiles (uid, name, phone, email, role, language, avatar, created_at, updated_at)
values ($1::text, $2::text, $3::text, $4::text, $5::text, $6::text, $7::text, now(), now())
on conflict (uid) do update set
    name = excluded.name,
    phone = excluded.phone,
    email = excluded.email,
    role = excluded.role,
    language = excluded.language,
    avatar = excluded.avatar,
    updated_at = now();
`

const QSelectProfileByUID = `--sql 6728ad7e-7d50-453d-a64d-29acb706b356
select uid, name, phone, email, role, language, avatar
from profiles
where uid = $1::text
limit 1;
`

// QUpdateProfile applies a partial update; null arguments keep the stored value.
const QUpdateProfile = `--sql 346980f4-3ce5-421c-8f70-131283549fb6
update profiles set
    name = coalesce($2::text, name),
    phone = coalesce($3::text, phone),
    language = coalesce($4::text, language),
    avatar = coalesce($5::text, avatar),
    updated_at = now()
where uid = $1::text
returning uid, name, phone, email, role, language, avatar;
`

const QSelectProfileByEmail = `--sql ae807b05-7a04-4077-ab8c-c0ebeedd599e
select uid, name, phone, email, role, language, avatar
from profiles
where email = $1::text
limit 1;
`

const QUpdateProfileRole = `--sql 4892a9b2-5172-4f8a-bcde-8b7b11cd63c7
update profiles set
    role = $2::text,
    updated_at = now()
where uid = $1::text;
`

const QCountProfilesByRole = `--sql 0f3b6c2e-58d4-4a11-9a7e-2d6c1e4b9f70
select count(*) from profiles where role = $1::text;
`
